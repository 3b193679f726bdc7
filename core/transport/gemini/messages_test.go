package gemini

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewSetupWiresAllSessionOptions(t *testing.T) {
	setup := NewSetup(SetupOptions{
		Model:             "models/gemini-2.0-flash-live-001",
		Modality:          ModalityAudio,
		Voice:             "Aoede",
		SystemInstruction: "You are a helpful assistant.",
		Tools: []ToolDeclaration{
			{Name: "get_weather", Description: "Report the weather.", Behavior: BehaviorNonBlocking},
		},
		InputTranscripts:  true,
		OutputTranscripts: true,
	})

	raw, err := json.Marshal(clientMessage{Setup: &setup})
	if err != nil {
		t.Fatalf("expected setup to marshal, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("expected setup JSON to parse, got %v", err)
	}

	wire, ok := decoded["setup"].(map[string]any)
	if !ok {
		t.Fatalf("expected top-level setup key, got %v", decoded)
	}
	if wire["model"] != "models/gemini-2.0-flash-live-001" {
		t.Fatalf("expected model in setup, got %v", wire["model"])
	}
	if _, ok := wire["inputAudioTranscription"]; !ok {
		t.Fatalf("expected input transcription enablement in setup")
	}
	if _, ok := wire["outputAudioTranscription"]; !ok {
		t.Fatalf("expected output transcription enablement in setup")
	}
	if !strings.Contains(string(raw), `"voiceName":"Aoede"`) {
		t.Fatalf("expected prebuilt voice config, got %s", raw)
	}
	if !strings.Contains(string(raw), `"responseModalities":["AUDIO"]`) {
		t.Fatalf("expected response modality, got %s", raw)
	}
	if !strings.Contains(string(raw), `"behavior":"NON_BLOCKING"`) {
		t.Fatalf("expected scheduling hint on declaration, got %s", raw)
	}
}

func TestNewSetupOmitsEmptySections(t *testing.T) {
	setup := NewSetup(SetupOptions{Model: "models/test"})

	raw, err := json.Marshal(setup)
	if err != nil {
		t.Fatalf("expected setup to marshal, got %v", err)
	}

	for _, section := range []string{"generationConfig", "systemInstruction", "tools", "inputAudioTranscription"} {
		if strings.Contains(string(raw), section) {
			t.Fatalf("expected %s to be omitted, got %s", section, raw)
		}
	}
}

func TestDecodeServerMessageVariants(t *testing.T) {
	audio := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03, 0x04})

	message, err := decodeServerMessage([]byte(`{
		"serverContent": {
			"modelTurn": {"parts": [
				{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "` + audio + `"}},
				{"text": "hello"}
			]},
			"inputTranscription": {"text": "hi there", "finished": true},
			"turnComplete": true
		}
	}`))
	if err != nil {
		t.Fatalf("expected server content to decode, got %v", err)
	}

	chunks := message.ServerContent.AudioParts()
	if len(chunks) != 1 || len(chunks[0]) != 4 {
		t.Fatalf("expected one 4-byte audio chunk, got %v", chunks)
	}
	texts := message.ServerContent.TextParts()
	if len(texts) != 1 || texts[0] != "hello" {
		t.Fatalf("expected one text part, got %v", texts)
	}
	if !message.ServerContent.TurnComplete {
		t.Fatalf("expected turn complete flag")
	}
	transcription := message.ServerContent.InputTranscription
	if transcription == nil || transcription.Text != "hi there" || !transcription.Finished {
		t.Fatalf("expected finished input transcription, got %+v", transcription)
	}

	message, err = decodeServerMessage([]byte(`{"toolCall": {"functionCalls": [{"id": "call-1", "name": "get_weather", "args": {"city": "Zagreb"}}]}}`))
	if err != nil {
		t.Fatalf("expected tool call to decode, got %v", err)
	}
	calls := message.ToolCall.FunctionCalls
	if len(calls) != 1 || calls[0].ID != "call-1" || calls[0].Name != "get_weather" {
		t.Fatalf("expected one correlated function call, got %+v", calls)
	}
	if calls[0].Args["city"] != "Zagreb" {
		t.Fatalf("expected structured args, got %v", calls[0].Args)
	}

	message, err = decodeServerMessage([]byte(`{"setupComplete": {}}`))
	if err != nil {
		t.Fatalf("expected setup complete to decode, got %v", err)
	}
	if message.SetupComplete == nil {
		t.Fatalf("expected setup complete variant to be set")
	}
}

func TestDecodeServerMessageMalformedFrameIsDecodeError(t *testing.T) {
	_, err := decodeServerMessage([]byte(`{not json`))
	if err == nil {
		t.Fatalf("expected decode error for malformed frame")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestAudioPartsSkipsMalformedInlineData(t *testing.T) {
	message, err := decodeServerMessage([]byte(`{
		"serverContent": {"modelTurn": {"parts": [
			{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "???not-base64???"}},
			{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "` + base64.StdEncoding.EncodeToString([]byte{0x05, 0x06}) + `"}}
		]}}
	}`))
	if err != nil {
		t.Fatalf("expected message to decode, got %v", err)
	}

	chunks := message.ServerContent.AudioParts()
	if len(chunks) != 1 {
		t.Fatalf("expected malformed chunk to be dropped and good chunk kept, got %d chunks", len(chunks))
	}
}

func TestAudioPartsIgnoresNonAudioInlineData(t *testing.T) {
	message, err := decodeServerMessage([]byte(`{
		"serverContent": {"modelTurn": {"parts": [
			{"inlineData": {"mimeType": "image/png", "data": "` + base64.StdEncoding.EncodeToString([]byte{0x01}) + `"}}
		]}}
	}`))
	if err != nil {
		t.Fatalf("expected message to decode, got %v", err)
	}
	if chunks := message.ServerContent.AudioParts(); chunks != nil {
		t.Fatalf("expected non-audio inline data to be ignored, got %v", chunks)
	}
}
