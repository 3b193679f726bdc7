package events

import "time"

// Kind is the dot-namespaced identifier of an event type, e.g.
// "session.opened". Subscribers that only care about a class of events can
// switch on it without type-asserting.
type Kind string

// Event is the common surface of every broadcast event.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and creation time shared by all events. Embed it and
// construct it through NewBase.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.timestamp }
