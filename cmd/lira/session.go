package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	live "github.com/avelinek/lira-core/core"
	"github.com/avelinek/lira-core/core/audio/miniaudio"
	"github.com/avelinek/lira-core/core/commands"
	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/events"
	llmgemini "github.com/avelinek/lira-core/core/llms/gemini"
	"github.com/avelinek/lira-core/core/transport/gemini"
)

// session owns everything behind the UI: the live client, the audio device,
// the context stores and the command interpreter. It doubles as the command
// host, so voice commands and key bindings drive the same actions.
type session struct {
	config appConfig

	client *live.Client
	audio  *miniaudio.Client
	bridge *live.ToolCallBridge

	memory    *conversations.Memory
	turnLog   *conversations.TurnLog
	systemLog *conversations.SystemLog

	interpreter *commands.Interpreter

	settingsOpen atomic.Bool

	mu      sync.Mutex
	program *tea.Program
}

func newSession(config appConfig) (*session, error) {
	audioClient, err := miniaudio.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}

	s := &session{
		config:    config,
		audio:     audioClient,
		memory:    conversations.NewMemory(),
		turnLog:   conversations.NewTurnLog(),
		systemLog: conversations.NewSystemLog(),
	}

	s.client = live.NewClient(config.APIKey, live.WithTurnLog(s.turnLog))
	s.bridge = live.NewToolCallBridge(s.client)

	s.interpreter = commands.NewInterpreter(s,
		commands.WithRules(config.commandRules()),
		commands.WithMemory(s.memory),
		commands.WithTurnLog(s.turnLog),
		commands.WithSystemLog(s.systemLog),
	)

	s.client.Subscribe(s.handleEvent)
	s.systemLog.Observe(func(entry conversations.LogEntry) {
		s.send(logMsg{entry: entry})
	})

	return s, nil
}

// attach hands the session the running UI program so background events can
// reach the render loop.
func (s *session) attach(program *tea.Program) {
	s.mu.Lock()
	s.program = program
	s.mu.Unlock()
}

func (s *session) send(msg tea.Msg) {
	s.mu.Lock()
	program := s.program
	s.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}

func (s *session) handleEvent(event events.Event) {
	switch event := event.(type) {
	case events.AssistantAudioFrame:
		if err := s.audio.SendAudio(event.Audio); err != nil {
			s.systemLog.Append(fmt.Sprintf("playback failed: %v", err))
		}

	case events.AssistantInterrupted:
		s.audio.ClearBuffer()

	case events.SessionClosed:
		s.audio.ClearBuffer()
		_ = s.audio.StopCapture()
	}

	s.interpreter.Handle(event)
	s.send(eventMsg{event: event})
}

func (s *session) connect() {
	config := &live.Config{
		Model:             s.config.Model,
		Voice:             s.config.Voice,
		BasePrompt:        s.config.BasePrompt,
		Memory:            s.memory,
		Tools:             toolDeclarations(),
		InputTranscripts:  s.config.InputTranscripts,
		OutputTranscripts: s.config.OutputTranscripts,
	}

	if err := s.client.Connect(context.Background(), config); err != nil {
		s.systemLog.Append(fmt.Sprintf("failed to connect: %v", err))
		return
	}

	if err := s.audio.StartCapture(context.Background(), s.client.SendAudio); err != nil {
		s.systemLog.Append(fmt.Sprintf("failed to start capture: %v", err))
	}
}

func (s *session) disconnect() {
	s.client.Disconnect()
	_ = s.audio.StopCapture()
	s.audio.ClearBuffer()
}

// summarize asks the text side-channel for a one-line summary of the
// conversation so far and reports it through the system log.
func (s *session) summarize() {
	transcript := s.transcript()
	if transcript == "" {
		s.systemLog.Append("nothing to summarize yet")
		return
	}

	prompt := "Summarize this conversation in one sentence:\n\n" + transcript
	summary := llmgemini.Generate(context.Background(), s.config.APIKey, "gemini-2.0-flash", prompt)
	s.systemLog.Append("summary: " + summary)
}

// recap asks the side-channel to retell the conversation as a short
// narrative, a friendlier catch-up than the one-line summary.
func (s *session) recap() {
	transcript := s.transcript()
	if transcript == "" {
		s.systemLog.Append("nothing to recap yet")
		return
	}

	prompt := "Retell this conversation as a short narrative of at most " +
		"three sentences, addressed to the user:\n\n" + transcript
	story := llmgemini.Generate(context.Background(), s.config.APIKey, "gemini-2.0-flash", prompt)
	s.systemLog.Append("recap: " + story)
}

// transcript renders the finalized turns as role-prefixed lines, empty when
// nothing has been said yet.
func (s *session) transcript() string {
	var transcript strings.Builder
	for turn := range s.turnLog.Values {
		fmt.Fprintf(&transcript, "%s: %s\n", turn.Role, turn.Text)
	}
	return transcript.String()
}

func (s *session) volume() float64 {
	return s.audio.Volume()
}

func (s *session) shutdown() {
	s.disconnect()
	s.bridge.Close()
	s.audio.Close()
}

// SettingsOpen, OpenSettings and CloseSettings let voice commands drive the
// settings panel the same way the "s" key does.
func (s *session) SettingsOpen() bool { return s.settingsOpen.Load() }

func (s *session) OpenSettings() {
	s.setSettingsOpen(true)
	s.send(settingsMsg{open: true})
}

func (s *session) CloseSettings() {
	s.setSettingsOpen(false)
	s.send(settingsMsg{open: false})
}

func (s *session) setSettingsOpen(open bool) {
	s.settingsOpen.Store(open)
}

func (s *session) Connected() bool { return s.client.IsConnected() }

func (s *session) StartSession() { go s.connect() }

func (s *session) StopSession() { s.disconnect() }

// toolDeclarations is the fixed tool surface offered to the model. Calls are
// acknowledged by the bridge; real execution is up to a future host.
func toolDeclarations() []gemini.ToolDeclaration {
	type reminderArgs struct {
		Text string `json:"text" jsonschema:"description=What to be reminded about"`
		When string `json:"when,omitempty" jsonschema:"description=When to remind, free text"`
	}

	return []gemini.ToolDeclaration{
		{
			Name:        "set_reminder",
			Description: "Set a reminder for the user.",
			Parameters:  gemini.ParametersFor(reminderArgs{}),
			Behavior:    gemini.BehaviorNonBlocking,
		},
	}
}
