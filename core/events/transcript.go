package events

const (
	// KindUserTranscript identifies transcriptions of captured user speech.
	KindUserTranscript Kind = "user_input.transcript"
	// KindAssistantTranscript identifies transcriptions of assistant speech.
	KindAssistantTranscript Kind = "assistant_speech.transcript"
)

// UserTranscript carries a transcription chunk of user speech. IsFinal marks
// the terminal transcript for the utterance; anything else is an interim
// snapshot that may still be revised.
type UserTranscript struct {
	Base
	Text    string
	IsFinal bool
}

// NewUserTranscript creates a user transcript event.
func NewUserTranscript(text string, isFinal bool) UserTranscript {
	return UserTranscript{Base: NewBase(KindUserTranscript), Text: text, IsFinal: isFinal}
}

// AssistantTranscript carries a transcription chunk of assistant speech.
type AssistantTranscript struct {
	Base
	Text    string
	IsFinal bool
}

// NewAssistantTranscript creates an assistant transcript event.
func NewAssistantTranscript(text string, isFinal bool) AssistantTranscript {
	return AssistantTranscript{Base: NewBase(KindAssistantTranscript), Text: text, IsFinal: isFinal}
}
