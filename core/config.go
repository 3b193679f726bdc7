package live

import (
	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/transport/gemini"
)

// memoryDelimiter labels the core memory block inside the composed system
// instruction.
const memoryDelimiter = "\n\nThings the user asked you to remember:\n"

// Config is the active configuration of one session. It is captured at
// Connect time; changing it afterwards has no effect on an open session.
type Config struct {
	// Model is the live model identifier, e.g. "models/gemini-2.0-flash-live-001".
	Model string

	// Modality selects what the model responds with. Audio when empty.
	Modality gemini.Modality

	// Voice is the prebuilt voice identifier for speech responses.
	Voice string

	// BasePrompt is the host-authored part of the system instruction.
	BasePrompt string

	// Memory is the optional core memory block appended to the base prompt.
	Memory *conversations.Memory

	// Tools lists the function declarations offered to the model.
	Tools []gemini.ToolDeclaration

	// InputTranscripts and OutputTranscripts enable transcription of the
	// respective audio directions.
	InputTranscripts  bool
	OutputTranscripts bool
}

// SystemInstruction composes the base prompt with the core memory block,
// separated by a labeled delimiter. Either part may be absent.
func (c *Config) SystemInstruction() string {
	instruction := c.BasePrompt

	if c.Memory != nil && !c.Memory.IsEmpty() {
		instruction += memoryDelimiter + c.Memory.Snapshot()
	}

	return instruction
}

func (c *Config) setupOptions() gemini.SetupOptions {
	modality := c.Modality
	if modality == "" {
		modality = gemini.ModalityAudio
	}

	return gemini.SetupOptions{
		Model:             c.Model,
		Modality:          modality,
		Voice:             c.Voice,
		SystemInstruction: c.SystemInstruction(),
		Tools:             c.Tools,
		InputTranscripts:  c.InputTranscripts,
		OutputTranscripts: c.OutputTranscripts,
	}
}
