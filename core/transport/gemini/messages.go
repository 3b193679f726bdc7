package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Modality selects what the model responds with over the live session.
type Modality string

const (
	ModalityAudio Modality = "AUDIO"
	ModalityText  Modality = "TEXT"
)

// Setup is the one-time session configuration sent right after the socket
// opens. The peer acknowledges it with a setupComplete message before any
// other traffic.
type Setup struct {
	Model                    string            `json:"model"`
	GenerationConfig         *generationConfig `json:"generationConfig,omitempty"`
	SystemInstruction        *content          `json:"systemInstruction,omitempty"`
	Tools                    []toolWire        `json:"tools,omitempty"`
	InputAudioTranscription  *struct{}         `json:"inputAudioTranscription,omitempty"`
	OutputAudioTranscription *struct{}         `json:"outputAudioTranscription,omitempty"`
}

type generationConfig struct {
	ResponseModalities []Modality    `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig *voiceConfig `json:"voiceConfig,omitempty"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig *prebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName,omitempty"`
}

type content struct {
	Parts []part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// SetupOptions carries everything configurable about one session.
type SetupOptions struct {
	Model             string
	Modality          Modality
	Voice             string
	SystemInstruction string
	Tools             []ToolDeclaration
	InputTranscripts  bool
	OutputTranscripts bool
}

// NewSetup builds the wire setup message from session options.
func NewSetup(opts SetupOptions) Setup {
	setup := Setup{Model: opts.Model}

	generation := &generationConfig{}
	if opts.Modality != "" {
		generation.ResponseModalities = []Modality{opts.Modality}
	}
	if opts.Voice != "" {
		generation.SpeechConfig = &speechConfig{
			VoiceConfig: &voiceConfig{
				PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: opts.Voice},
			},
		}
	}
	if generation.ResponseModalities != nil || generation.SpeechConfig != nil {
		setup.GenerationConfig = generation
	}

	if instruction := strings.TrimSpace(opts.SystemInstruction); instruction != "" {
		setup.SystemInstruction = &content{Parts: []part{{Text: instruction}}}
	}

	if len(opts.Tools) > 0 {
		setup.Tools = toolsToWire(opts.Tools)
	}

	if opts.InputTranscripts {
		setup.InputAudioTranscription = &struct{}{}
	}
	if opts.OutputTranscripts {
		setup.OutputAudioTranscription = &struct{}{}
	}

	return setup
}

type clientMessage struct {
	Setup         *Setup            `json:"setup,omitempty"`
	RealtimeInput *realtimeInput    `json:"realtimeInput,omitempty"`
	ToolResponse  *toolResponseWire `json:"toolResponse,omitempty"`
}

type realtimeInput struct {
	Audio *inlineData `json:"audio,omitempty"`
}

type toolResponseWire struct {
	FunctionResponses []functionResponse `json:"functionResponses"`
}

type functionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}

// ToolResponse is one correlated answer to a model function call.
type ToolResponse struct {
	ID       string
	Name     string
	Response map[string]any
}

// ServerMessage is one decoded inbound frame. Exactly one of the fields is
// set per message.
type ServerMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
	ToolCall      *ToolCall      `json:"toolCall,omitempty"`
	GoAway        *GoAway        `json:"goAway,omitempty"`
}

// ServerContent carries model output and lifecycle flags for the current
// turn.
type ServerContent struct {
	ModelTurn           *content       `json:"modelTurn,omitempty"`
	Interrupted         bool           `json:"interrupted,omitempty"`
	TurnComplete        bool           `json:"turnComplete,omitempty"`
	InputTranscription  *Transcription `json:"inputTranscription,omitempty"`
	OutputTranscription *Transcription `json:"outputTranscription,omitempty"`
}

// Transcription is one speech-to-text chunk for either direction of the
// session. Finished marks the terminal transcript of the utterance.
type Transcription struct {
	Text     string `json:"text,omitempty"`
	Finished bool   `json:"finished,omitempty"`
}

// ToolCall is a batch of function invocations requested by the model.
type ToolCall struct {
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// FunctionCall is one structured invocation with a correlation id.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

// GoAway announces imminent server-side connection termination.
type GoAway struct {
	TimeLeft string `json:"timeLeft,omitempty"`
}

// AudioParts extracts the raw PCM chunks of a model turn, decoding the
// base64 inline payloads. Malformed parts are skipped.
func (c *ServerContent) AudioParts() [][]byte {
	if c == nil || c.ModelTurn == nil {
		return nil
	}

	var chunks [][]byte
	for _, p := range c.ModelTurn.Parts {
		if p.InlineData == nil || !strings.HasPrefix(p.InlineData.MimeType, "audio/pcm") {
			continue
		}
		data, err := decodeBase64(p.InlineData.Data)
		if err != nil {
			logger.Warn("dropping undecodable audio part", "error", err)
			continue
		}
		chunks = append(chunks, data)
	}
	return chunks
}

// TextParts extracts the text parts of a model turn.
func (c *ServerContent) TextParts() []string {
	if c == nil || c.ModelTurn == nil {
		return nil
	}

	var texts []string
	for _, p := range c.ModelTurn.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

// DecodeError reports a malformed inbound frame. Decode failures are local
// to one message; the session continues past them.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func decodeServerMessage(raw []byte) (*ServerMessage, error) {
	var message ServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, &DecodeError{Message: "failed to unmarshal server message", Cause: err}
	}
	return &message, nil
}
