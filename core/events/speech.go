package events

const (
	// KindAssistantAudioFrame identifies synthesized assistant speech audio.
	KindAssistantAudioFrame Kind = "assistant_speech.frame"
	// KindAssistantInterrupted identifies peer-side playback preemption.
	KindAssistantInterrupted Kind = "assistant_speech.interrupted"
	// KindTurnComplete identifies the end of the current response turn.
	KindTurnComplete Kind = "turn_state.completed"
)

// AssistantAudioFrame carries a raw PCM chunk of assistant speech.
type AssistantAudioFrame struct {
	Base
	Audio []byte
}

// NewAssistantAudioFrame creates an assistant speech audio event.
func NewAssistantAudioFrame(audio []byte) AssistantAudioFrame {
	return AssistantAudioFrame{Base: NewBase(KindAssistantAudioFrame), Audio: audio}
}

// AssistantInterrupted marks that the peer preempted in-flight speech.
// Subscribers owning playback must flush queued audio on receipt.
type AssistantInterrupted struct{ Base }

// NewAssistantInterrupted creates an interruption event.
func NewAssistantInterrupted() AssistantInterrupted {
	return AssistantInterrupted{Base: NewBase(KindAssistantInterrupted)}
}

// TurnComplete marks that the peer finished its response turn.
type TurnComplete struct{ Base }

// NewTurnComplete creates a turn complete event.
func NewTurnComplete() TurnComplete {
	return TurnComplete{Base: NewBase(KindTurnComplete)}
}
