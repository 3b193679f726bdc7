package live

import "sync"

// transcriptAccumulator collects the in-progress transcript for one speaker
// role. Roles never share an accumulator, so user and assistant turns cannot
// interleave each other's state.
//
// A non-final chunk appends to the running text unless the previous chunk for
// the role was final, in which case a new turn starts. A final chunk closes
// the turn and hands the assembled text to onFinal.
//
// The read loop appends while Connect and Disconnect reset from the host
// goroutine, so all state is guarded by its own mutex. onFinal runs under
// that mutex; it must not call back into the accumulator.
type transcriptAccumulator struct {
	mu        sync.Mutex
	text      string
	prevFinal bool

	onFinal func(text string)
}

func newTranscriptAccumulator(onFinal func(text string)) *transcriptAccumulator {
	return &transcriptAccumulator{prevFinal: true, onFinal: onFinal}
}

func (a *transcriptAccumulator) add(text string, isFinal bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.prevFinal {
		a.text = ""
	}
	a.text += text
	a.prevFinal = isFinal

	if isFinal && a.onFinal != nil {
		a.onFinal(a.text)
	}
}

// current returns the in-progress text for the open turn, empty once the turn
// was finalized.
func (a *transcriptAccumulator) current() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.prevFinal {
		return ""
	}
	return a.text
}

func (a *transcriptAccumulator) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.text = ""
	a.prevFinal = true
}
