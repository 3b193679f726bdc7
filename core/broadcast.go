package live

import (
	"slices"
	"sync"

	"github.com/avelinek/lira-core/core/events"
)

// broadcaster fans every published event out to all registered handlers in
// registration order. Publishing iterates a snapshot of the handler list, so
// handlers may subscribe or unsubscribe mid-dispatch without corrupting an
// active broadcast.
type broadcaster struct {
	mu       sync.Mutex
	handlers []subscription
	nextID   uint64
}

type subscription struct {
	id      uint64
	handler func(events.Event)
}

func (b *broadcaster) subscribe(handler func(events.Event)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers = slices.DeleteFunc(b.handlers, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (b *broadcaster) publish(event events.Event) {
	b.mu.Lock()
	snapshot := slices.Clone(b.handlers)
	b.mu.Unlock()

	for _, subscription := range snapshot {
		subscription.handler(event)
	}
}
