package commands

import (
	"fmt"
	"strings"

	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/events"
)

const noRecordMessage = "no recorded utterance to recall"

// trailingPunctuation is stripped from the end of an utterance before exact
// matching. Speech transcription likes to finish sentences.
const trailingPunctuation = ".,!?;:…"

// Host owns the side effects commands trigger and the state the rules guard
// on. The interpreter never acts on the transport or the UI directly.
type Host interface {
	SettingsOpen() bool
	OpenSettings()
	CloseSettings()

	Connected() bool
	StartSession()
	StopSession()
}

// Interpreter classifies finalized user transcripts into at most one command
// and invokes the matching host action. Non-final transcripts and unmatched
// text do nothing.
type Interpreter struct {
	host Host

	memory    *conversations.Memory
	turnLog   *conversations.TurnLog
	systemLog *conversations.SystemLog

	prefixRules []Rule
	exactRules  map[Action][]string
}

type InterpreterOption func(*Interpreter)

// WithRules replaces the default phrase rules.
func WithRules(rules []Rule) InterpreterOption {
	return func(i *Interpreter) { i.setRules(rules) }
}

// WithMemory wires the core memory block that remember-commands append to.
func WithMemory(memory *conversations.Memory) InterpreterOption {
	return func(i *Interpreter) { i.memory = memory }
}

// WithTurnLog wires the turn log recall-commands search.
func WithTurnLog(turnLog *conversations.TurnLog) InterpreterOption {
	return func(i *Interpreter) { i.turnLog = turnLog }
}

// WithSystemLog wires the log recognized commands are reported to.
func WithSystemLog(systemLog *conversations.SystemLog) InterpreterOption {
	return func(i *Interpreter) { i.systemLog = systemLog }
}

func NewInterpreter(host Host, opts ...InterpreterOption) *Interpreter {
	interpreter := &Interpreter{host: host}
	interpreter.setRules(DefaultRules())

	for _, opt := range opts {
		opt(interpreter)
	}

	return interpreter
}

func (i *Interpreter) setRules(rules []Rule) {
	i.prefixRules = nil
	i.exactRules = map[Action][]string{}

	for _, rule := range rules {
		if rule.Prefix {
			i.prefixRules = append(i.prefixRules, rule)
			continue
		}
		i.exactRules[rule.Action] = append(i.exactRules[rule.Action], strings.ToLower(rule.Phrase))
	}
}

// Handle is meant to be subscribed to a session client's event stream. Only
// finalized user transcripts are considered.
func (i *Interpreter) Handle(event events.Event) {
	transcript, ok := event.(events.UserTranscript)
	if !ok || !transcript.IsFinal {
		return
	}
	i.Interpret(transcript.Text)
}

// Interpret classifies one finalized utterance and fires at most one action.
// Prefix rules are checked first, then the exact-match sets in priority
// order. Unmatched text is not an error.
func (i *Interpreter) Interpret(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	if i.interpretPrefix(trimmed) {
		return
	}

	normalized := strings.ToLower(strings.TrimRight(trimmed, trailingPunctuation))
	normalized = strings.TrimSpace(normalized)

	for _, action := range exactActionOrder {
		for _, phrase := range i.exactRules[action] {
			if normalized != phrase {
				continue
			}
			if i.fire(action, trimmed) {
				return
			}
			// Guard refused the action; the phrase still consumed
			// the utterance.
			return
		}
	}
}

// interpretPrefix matches prefix rules against the original-cased trimmed
// text. It reports whether a prefix rule consumed the utterance, even when
// the payload turned out empty.
func (i *Interpreter) interpretPrefix(trimmed string) bool {
	lowered := strings.ToLower(trimmed)

	for _, rule := range i.prefixRules {
		phrase := strings.ToLower(rule.Phrase)
		if !strings.HasPrefix(lowered, phrase) {
			continue
		}

		payload := strings.TrimSpace(trimmed[len(phrase):])
		payload = strings.TrimPrefix(payload, ":")
		payload = strings.TrimSpace(payload)
		if payload == "" {
			return true
		}

		i.remember(payload)
		return true
	}

	return false
}

// fire runs the action behind a recognized exact phrase, guarded on host
// state so recognized commands never repeat an action that already holds.
// It reports whether the action actually ran.
func (i *Interpreter) fire(action Action, utterance string) bool {
	switch action {
	case ActionOpenSettings:
		if i.host.SettingsOpen() {
			return false
		}
		i.log("opening settings")
		i.host.OpenSettings()

	case ActionCloseSettings:
		if !i.host.SettingsOpen() {
			return false
		}
		i.log("closing settings")
		i.host.CloseSettings()

	case ActionStartSession:
		if i.host.Connected() {
			return false
		}
		i.log("starting session")
		i.host.StartSession()

	case ActionStopSession:
		if !i.host.Connected() {
			return false
		}
		i.log("stopping session")
		i.host.StopSession()

	case ActionRecallLast:
		i.recall()

	default:
		logger.Warn("unhandled command action", "action", action, "utterance", utterance)
		return false
	}

	return true
}

func (i *Interpreter) remember(payload string) {
	if i.memory == nil {
		logger.Warn("remember command without a memory store", "payload", payload)
		return
	}

	i.memory.Append(payload)
	i.log(fmt.Sprintf("noted to memory: %s", payload))
}

func (i *Interpreter) recall() {
	if i.turnLog != nil {
		if turn := i.turnLog.Last(conversations.RoleUser); turn != nil {
			i.log(fmt.Sprintf("you last said: %q", turn.Text))
			return
		}
	}
	i.log(noRecordMessage)
}

func (i *Interpreter) log(entry string) {
	if i.systemLog != nil {
		i.systemLog.Append(entry)
	}
	logger.Info("command recognized", "entry", entry)
}
