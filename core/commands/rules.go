package commands

// Action is the category a recognized utterance maps to.
type Action string

const (
	// ActionRemember appends the free-text payload after the matched
	// prefix to core memory.
	ActionRemember Action = "remember"
	// ActionOpenSettings asks the host to show its settings surface.
	ActionOpenSettings Action = "open_settings"
	// ActionCloseSettings asks the host to hide its settings surface.
	ActionCloseSettings Action = "close_settings"
	// ActionStartSession asks the host to open a live session.
	ActionStartSession Action = "start_session"
	// ActionStopSession asks the host to tear the live session down.
	ActionStopSession Action = "stop_session"
	// ActionRecallLast reports the most recent finalized user turn.
	ActionRecallLast Action = "recall_last"
)

// exactActionOrder is the priority order exact-match rules are checked in.
// The first action with a matching phrase wins.
var exactActionOrder = []Action{
	ActionOpenSettings,
	ActionCloseSettings,
	ActionStartSession,
	ActionStopSession,
	ActionRecallLast,
}

// Rule maps one spoken phrase in one locale to an action. Prefix rules match
// the phrase as a case-insensitive prefix and treat the remainder of the
// utterance as free-text payload; exact rules match the whole normalized
// utterance.
type Rule struct {
	// Locale tags the phrase's language, e.g. "en" or "hr". Informational
	// for hosts that filter rules per configured locale.
	Locale string

	Action Action
	Phrase string

	// Prefix marks the rule as a prefix-with-payload rule.
	Prefix bool
}

// DefaultRules returns the built-in English and Croatian phrase rules. Hosts
// can extend or replace them through WithRules.
func DefaultRules() []Rule {
	return []Rule{
		{Locale: "en", Action: ActionRemember, Phrase: "remember this", Prefix: true},
		{Locale: "en", Action: ActionRemember, Phrase: "make a note", Prefix: true},
		{Locale: "hr", Action: ActionRemember, Phrase: "zapamti ovo", Prefix: true},
		{Locale: "hr", Action: ActionRemember, Phrase: "zabilježi", Prefix: true},

		{Locale: "en", Action: ActionOpenSettings, Phrase: "open settings"},
		{Locale: "en", Action: ActionOpenSettings, Phrase: "show settings"},
		{Locale: "hr", Action: ActionOpenSettings, Phrase: "otvori postavke"},

		{Locale: "en", Action: ActionCloseSettings, Phrase: "close settings"},
		{Locale: "en", Action: ActionCloseSettings, Phrase: "hide settings"},
		{Locale: "hr", Action: ActionCloseSettings, Phrase: "zatvori postavke"},

		{Locale: "en", Action: ActionStartSession, Phrase: "start"},
		{Locale: "en", Action: ActionStartSession, Phrase: "connect"},
		{Locale: "hr", Action: ActionStartSession, Phrase: "kreni"},
		{Locale: "hr", Action: ActionStartSession, Phrase: "spoji se"},

		{Locale: "en", Action: ActionStopSession, Phrase: "stop"},
		{Locale: "en", Action: ActionStopSession, Phrase: "disconnect"},
		{Locale: "hr", Action: ActionStopSession, Phrase: "stani"},
		{Locale: "hr", Action: ActionStopSession, Phrase: "prekini"},

		{Locale: "en", Action: ActionRecallLast, Phrase: "what did i just say"},
		{Locale: "en", Action: ActionRecallLast, Phrase: "repeat my last sentence"},
		{Locale: "hr", Action: ActionRecallLast, Phrase: "što sam zadnje rekao"},
	}
}
