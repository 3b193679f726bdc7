package events

const (
	// KindSessionOpened identifies peer acknowledgement of session setup.
	KindSessionOpened Kind = "session.opened"
	// KindSessionClosed identifies transport closure.
	KindSessionClosed Kind = "session.closed"
)

// SessionOpened marks the transition into an open session.
type SessionOpened struct{ Base }

// NewSessionOpened creates a session opened event.
func NewSessionOpened() SessionOpened {
	return SessionOpened{Base: NewBase(KindSessionOpened)}
}

// SessionClosed marks the end of a session, expected or not.
type SessionClosed struct {
	Base
	Reason string
}

// NewSessionClosed creates a session closed event.
func NewSessionClosed(reason string) SessionClosed {
	return SessionClosed{Base: NewBase(KindSessionClosed), Reason: reason}
}
