package conversations

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the conversation a turn belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one recorded utterance.
type Turn struct {
	ID        string
	Role      Role
	Text      string
	IsFinal   bool
	Timestamp time.Time
}

// TurnLog is the append-only record of conversation turns. It is passed
// explicitly to the components that need it; there is no process-wide
// instance.
type TurnLog struct {
	mu    sync.Mutex
	turns []Turn
}

func NewTurnLog() *TurnLog {
	return &TurnLog{}
}

// Append records a finalized turn and returns it.
func (l *TurnLog) Append(role Role, text string) Turn {
	turn := Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		IsFinal:   true,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	l.turns = append(l.turns, turn)
	l.mu.Unlock()

	return turn
}

// Values is an iterator that goes over all the stored turns starting from the
// earliest towards the latest
func (l *TurnLog) Values(yield func(Turn) bool) {
	l.mu.Lock()
	turns := slices.Clone(l.turns)
	l.mu.Unlock()

	for _, turn := range turns {
		if !yield(turn) {
			return
		}
	}
}

// RValues is an iterator that goes over all the stored turns starting from
// the latest towards the earliest
func (l *TurnLog) RValues(yield func(Turn) bool) {
	l.mu.Lock()
	turns := slices.Clone(l.turns)
	l.mu.Unlock()

	for _, turn := range slices.Backward(turns) {
		if !yield(turn) {
			return
		}
	}
}

// Last returns the most recent finalized turn for the given role, or nil when
// none exists.
func (l *TurnLog) Last(role Role) *Turn {
	var found *Turn
	l.RValues(func(turn Turn) bool {
		if turn.Role == role && turn.IsFinal {
			found = &turn
			return false
		}
		return true
	})
	return found
}

func (l *TurnLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}
