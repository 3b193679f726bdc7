package conversations

import (
	"slices"
	"sync"
	"time"
)

// LogEntry is one human-readable line in the host-visible system log.
type LogEntry struct {
	Text      string
	Timestamp time.Time
}

// SystemLog collects human-readable notices: recognized commands, connection
// failures, anything the host should surface. Recognized failures land here
// instead of being dropped silently.
type SystemLog struct {
	mu      sync.Mutex
	entries []LogEntry

	onAppend func(LogEntry)
}

func NewSystemLog() *SystemLog {
	return &SystemLog{}
}

// Append records one entry and notifies the observer, if any.
func (l *SystemLog) Append(text string) {
	entry := LogEntry{Text: text, Timestamp: time.Now()}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	observer := l.onAppend
	l.mu.Unlock()

	if observer != nil {
		observer(entry)
	}
}

// Entries returns a snapshot of all entries, oldest first.
func (l *SystemLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Observe registers a callback invoked for every appended entry. Only one
// observer is supported; the host owns presentation.
func (l *SystemLog) Observe(callback func(LogEntry)) {
	l.mu.Lock()
	l.onAppend = callback
	l.mu.Unlock()
}
