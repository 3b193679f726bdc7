package conversations

import (
	"strings"
	"sync"
)

// Memory holds the user-curated core memory block that gets appended to the
// model's system instruction.
type Memory struct {
	mu   sync.Mutex
	text string
}

func NewMemory() *Memory {
	return &Memory{}
}

// Append records one remembered line as a dash bullet. The first line has no
// leading newline so the block stays tight.
func (m *Memory) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.text == "" {
		m.text = "- " + line
		return
	}
	m.text += "\n- " + line
}

// Snapshot returns the current memory block.
func (m *Memory) Snapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Memory) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text == ""
}

// Set replaces the whole block, used when loading persisted settings.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}
