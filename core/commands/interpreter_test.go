package commands

import (
	"strings"
	"testing"

	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/events"
)

type stubHost struct {
	settingsOpen bool
	connected    bool

	opened, closed   int
	started, stopped int
}

func (h *stubHost) SettingsOpen() bool { return h.settingsOpen }
func (h *stubHost) OpenSettings()      { h.opened++; h.settingsOpen = true }
func (h *stubHost) CloseSettings()     { h.closed++; h.settingsOpen = false }

func (h *stubHost) Connected() bool { return h.connected }
func (h *stubHost) StartSession()   { h.started++; h.connected = true }
func (h *stubHost) StopSession()    { h.stopped++; h.connected = false }

func newTestInterpreter(host *stubHost) (*Interpreter, *conversations.Memory, *conversations.TurnLog, *conversations.SystemLog) {
	memory := &conversations.Memory{}
	turnLog := conversations.NewTurnLog()
	systemLog := &conversations.SystemLog{}

	interpreter := NewInterpreter(host,
		WithMemory(memory),
		WithTurnLog(turnLog),
		WithSystemLog(systemLog),
	)
	return interpreter, memory, turnLog, systemLog
}

func TestNonFinalTranscriptsNeverTrigger(t *testing.T) {
	host := &stubHost{connected: true}
	interpreter, _, _, systemLog := newTestInterpreter(host)

	interpreter.Handle(events.NewUserTranscript("stop stream", false))
	interpreter.Handle(events.NewUserTranscript("stop", false))

	if host.stopped != 0 {
		t.Fatalf("expected no disconnect from non-final transcripts, got %d", host.stopped)
	}
	if entries := systemLog.Entries(); len(entries) != 0 {
		t.Fatalf("expected no log entries, got %v", entries)
	}
}

func TestStopFiresOnceWhileConnectedAndNeverWhileDisconnected(t *testing.T) {
	host := &stubHost{connected: true}
	interpreter, _, _, systemLog := newTestInterpreter(host)

	interpreter.Interpret("Stop.")

	if host.stopped != 1 {
		t.Fatalf("expected exactly one disconnect, got %d", host.stopped)
	}
	if entries := systemLog.Entries(); len(entries) != 1 {
		t.Fatalf("expected exactly one log entry, got %v", entries)
	}

	interpreter.Interpret("Stop.")

	if host.stopped != 1 {
		t.Fatalf("expected no disconnect while already disconnected, got %d", host.stopped)
	}
	if entries := systemLog.Entries(); len(entries) != 1 {
		t.Fatalf("expected no additional log entry, got %v", entries)
	}
}

func TestSettingsCommandsGuardOnCurrentState(t *testing.T) {
	host := &stubHost{}
	interpreter, _, _, _ := newTestInterpreter(host)

	interpreter.Interpret("open settings")
	interpreter.Interpret("open settings")
	if host.opened != 1 {
		t.Fatalf("expected settings to open once, got %d", host.opened)
	}

	interpreter.Interpret("close settings")
	interpreter.Interpret("close settings")
	if host.closed != 1 {
		t.Fatalf("expected settings to close once, got %d", host.closed)
	}
}

func TestRememberPrefixAppendsPayloadToMemory(t *testing.T) {
	host := &stubHost{}
	interpreter, memory, _, _ := newTestInterpreter(host)

	interpreter.Interpret("Remember this: buy milk")
	if got := memory.Snapshot(); got != "- buy milk" {
		t.Fatalf("expected first memory line, got %q", got)
	}

	interpreter.Interpret("make a note water the plants")
	if got := memory.Snapshot(); got != "- buy milk\n- water the plants" {
		t.Fatalf("expected appended memory line, got %q", got)
	}
}

func TestRememberWithEmptyPayloadIsSilentlyIgnored(t *testing.T) {
	host := &stubHost{}
	interpreter, memory, _, systemLog := newTestInterpreter(host)

	interpreter.Interpret("remember this:")
	interpreter.Interpret("remember this")

	if !memory.IsEmpty() {
		t.Fatalf("expected memory to stay empty, got %q", memory.Snapshot())
	}
	if entries := systemLog.Entries(); len(entries) != 0 {
		t.Fatalf("expected no log entries, got %v", entries)
	}
}

func TestCroatianPhrasesMatch(t *testing.T) {
	host := &stubHost{connected: true}
	interpreter, memory, _, _ := newTestInterpreter(host)

	interpreter.Interpret("Zapamti ovo: kupi mlijeko")
	if got := memory.Snapshot(); got != "- kupi mlijeko" {
		t.Fatalf("expected Croatian prefix rule to fire, got %q", got)
	}

	interpreter.Interpret("Stani!")
	if host.stopped != 1 {
		t.Fatalf("expected Croatian stop phrase to disconnect, got %d", host.stopped)
	}
}

func TestRecallReportsLatestUserTurnVerbatim(t *testing.T) {
	host := &stubHost{}
	interpreter, _, turnLog, systemLog := newTestInterpreter(host)

	turnLog.Append(conversations.RoleUser, "first thing")
	turnLog.Append(conversations.RoleAssistant, "assistant reply")
	turnLog.Append(conversations.RoleUser, "second thing")

	interpreter.Interpret("what did I just say?")

	entries := systemLog.Entries()
	if len(entries) != 1 || !strings.Contains(entries[0].Text, `"second thing"`) {
		t.Fatalf("expected verbatim recall of the latest user turn, got %v", entries)
	}
}

func TestRecallWithEmptyTurnLogReportsNoRecord(t *testing.T) {
	host := &stubHost{}
	interpreter, _, _, systemLog := newTestInterpreter(host)

	interpreter.Interpret("what did I just say")

	entries := systemLog.Entries()
	if len(entries) != 1 || entries[0].Text != noRecordMessage {
		t.Fatalf("expected fixed no-record message, got %v", entries)
	}
}

func TestUnmatchedTextDoesNothing(t *testing.T) {
	host := &stubHost{}
	interpreter, memory, _, systemLog := newTestInterpreter(host)

	interpreter.Interpret("what a lovely day")

	if host.opened+host.closed+host.started+host.stopped != 0 {
		t.Fatalf("expected no host actions for unmatched text")
	}
	if !memory.IsEmpty() || len(systemLog.Entries()) != 0 {
		t.Fatalf("expected no side effects for unmatched text")
	}
}

func TestCustomRulesReplaceDefaults(t *testing.T) {
	host := &stubHost{}
	interpreter, _, _, _ := newTestInterpreter(host)
	WithRules([]Rule{
		{Locale: "de", Action: ActionStartSession, Phrase: "los"},
	})(interpreter)

	interpreter.Interpret("start")
	if host.started != 0 {
		t.Fatalf("expected replaced rules to drop the default phrases")
	}

	interpreter.Interpret("Los!")
	if host.started != 1 {
		t.Fatalf("expected custom phrase to fire, got %d", host.started)
	}
}
