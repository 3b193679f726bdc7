package live

import (
	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/transport/gemini"
)

type ClientOption func(*Client)

// WithTurnLog wires the persisted turn log that finalized transcripts are
// recorded into.
func WithTurnLog(turnLog *conversations.TurnLog) ClientOption {
	return func(c *Client) { c.turnLog = turnLog }
}

// WithDialOptions forwards transport-level dial options, e.g. an endpoint
// override.
func WithDialOptions(opts ...gemini.DialOption) ClientOption {
	return func(c *Client) { c.dialOpts = opts }
}
