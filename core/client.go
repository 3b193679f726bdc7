package live

import (
	"context"
	"errors"
	"fmt"

	"sync"

	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/events"
	"github.com/avelinek/lira-core/core/transport/gemini"
)

// State is the connection state of a [Client].
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateClosed     State = "closed"
)

type transportConn interface {
	Read() (*gemini.ServerMessage, error)
	WriteAudio(pcm []byte) error
	WriteToolResponse(responses []gemini.ToolResponse) error
	Close() error
}

// Client owns the duplex connection lifecycle to the generative peer. It
// serializes outbound configuration, audio and tool responses, and
// demultiplexes every inbound message into exactly one typed event broadcast
// synchronously to all subscribers before the next message is read.
//
// The transport handle is owned exclusively by the client and replaced, never
// mutated, on every reconnect. No automatic reconnection is attempted; retry
// policy belongs to the host.
type Client struct {
	mu    sync.Mutex
	state State
	conn  transportConn

	// generation invalidates stale connection attempts: every Connect and
	// Disconnect bumps it, and any in-flight connect or read loop that
	// observes a different generation abandons its work. This is what keeps a
	// connect that resolves after a disconnect from landing in a stale open
	// state.
	generation uint64

	config *Config

	broadcaster broadcaster

	turnLog              *conversations.TurnLog
	userAccumulator      *transcriptAccumulator
	assistantAccumulator *transcriptAccumulator

	apiKey   string
	dial     func(ctx context.Context, setup gemini.Setup) (transportConn, error)
	dialOpts []gemini.DialOption
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		state:  StateIdle,
		apiKey: apiKey,
	}
	c.dial = func(ctx context.Context, setup gemini.Setup) (transportConn, error) {
		return gemini.Dial(ctx, c.apiKey, setup, c.dialOpts...)
	}

	c.userAccumulator = newTranscriptAccumulator(func(text string) {
		if c.turnLog != nil {
			c.turnLog.Append(conversations.RoleUser, text)
		}
	})
	c.assistantAccumulator = newTranscriptAccumulator(func(text string) {
		if c.turnLog != nil {
			c.turnLog.Append(conversations.RoleAssistant, text)
		}
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the session is open.
func (c *Client) IsConnected() bool {
	return c.State() == StateOpen
}

// Config returns the configuration of the current or last session.
func (c *Client) Config() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Subscribe registers a handler for every inbound event. Handlers are invoked
// synchronously in registration order. The returned function unsubscribes and
// is safe to call during dispatch.
func (c *Client) Subscribe(handler func(events.Event)) (unsubscribe func()) {
	return c.broadcaster.subscribe(handler)
}

// Connect establishes a new session with the given configuration. It tears
// down any existing transport first, then suspends the caller until the peer
// acknowledges session setup or the attempt fails.
//
// A Disconnect issued while Connect is in flight makes the attempt fail with
// a *ConnectionError instead of completing into a stale open session.
func (c *Client) Connect(ctx context.Context, config *Config) error {
	if config == nil {
		return ErrNoConfiguration
	}

	ctx, span := tracer.Start(ctx, "connect live session")
	defer span.End()

	c.mu.Lock()
	c.teardownLocked()
	c.generation++
	generation := c.generation
	c.state = StateConnecting
	c.config = config
	c.userAccumulator.reset()
	c.assistantAccumulator.reset()
	c.mu.Unlock()

	conn, err := c.dial(ctx, gemini.NewSetup(config.setupOptions()))
	if err != nil {
		c.failConnect(generation)
		return &ConnectionError{Reason: "transport dial failed", Cause: err}
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		conn.Close()
		return &ConnectionError{Reason: "connection superseded"}
	}
	c.conn = conn
	c.mu.Unlock()

	if err := c.awaitAcknowledgement(conn, generation); err != nil {
		return err
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		conn.Close()
		return &ConnectionError{Reason: "connection superseded"}
	}
	c.state = StateOpen
	c.mu.Unlock()

	c.broadcaster.publish(events.NewSessionOpened())
	logger.Info("live session established", "model", config.Model)

	go c.readLoop(conn, generation)
	return nil
}

// awaitAcknowledgement reads until the peer confirms session setup. Malformed
// frames are skipped; anything else before the acknowledgement fails the
// attempt.
func (c *Client) awaitAcknowledgement(conn transportConn, generation uint64) error {
	for {
		message, err := conn.Read()
		if err != nil {
			var decodeErr *gemini.DecodeError
			if errors.As(err, &decodeErr) {
				logger.Warn("skipping malformed frame during setup", "error", decodeErr)
				continue
			}
			c.failConnect(generation)
			conn.Close()
			return &ConnectionError{Reason: "peer rejected session", Cause: err}
		}

		if message.SetupComplete != nil {
			return nil
		}

		logger.Warn("unexpected frame before setup acknowledgement")
	}
}

func (c *Client) failConnect(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return
	}
	c.state = StateClosed
	c.conn = nil
}

// Disconnect tears down the transport if present and synchronously
// transitions to idle. It is idempotent, valid from any state, and safe to
// call concurrently with an in-flight Connect. Subscribers observe the
// closure before Disconnect returns, so dependent state is cleaned up with no
// async gap.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.generation++
	conn := c.conn
	c.conn = nil
	hadSession := c.state == StateConnecting || c.state == StateOpen
	c.state = StateIdle
	c.userAccumulator.reset()
	c.assistantAccumulator.reset()
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if hadSession {
		c.broadcaster.publish(events.NewSessionClosed("disconnected"))
	}
}

// SendAudio forwards one captured PCM chunk upstream. Chunks sent outside an
// open session are dropped silently since capture races against disconnects.
func (c *Client) SendAudio(pcm []byte) {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		return
	}
	if err := conn.WriteAudio(pcm); err != nil {
		logger.Warn("failed to forward captured audio", "error", err)
	}
}

// SendToolResponse transmits a batch of correlated tool responses. It fails
// with ErrNotConnected outside an open session.
func (c *Client) SendToolResponse(responses []gemini.ToolResponse) error {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		return ErrNotConnected
	}

	if err := conn.WriteToolResponse(responses); err != nil {
		return fmt.Errorf("failed to send tool response: %w", err)
	}
	return nil
}

func (c *Client) readLoop(conn transportConn, generation uint64) {
	for {
		message, err := conn.Read()
		if err != nil {
			var decodeErr *gemini.DecodeError
			if errors.As(err, &decodeErr) {
				// One bad frame must not end the session.
				logger.Warn("dropping malformed frame", "error", decodeErr)
				continue
			}

			transportErr := &TransportError{Cause: err}
			c.mu.Lock()
			current := c.generation == generation
			if current {
				c.state = StateClosed
				c.conn = nil
			}
			c.mu.Unlock()

			if current {
				logger.Warn("live session lost", "error", transportErr)
				c.broadcaster.publish(events.NewSessionClosed(transportErr.Error()))
			}
			return
		}

		c.mu.Lock()
		current := c.generation == generation
		c.mu.Unlock()
		if !current {
			return
		}

		c.dispatch(message)
	}
}

// dispatch maps one decoded server message onto typed events and broadcasts
// them before the read loop accepts the next message. No coalescing, no
// reordering.
func (c *Client) dispatch(message *gemini.ServerMessage) {
	if message.ToolCall != nil {
		invocations := make([]events.ToolInvocation, 0, len(message.ToolCall.FunctionCalls))
		for _, call := range message.ToolCall.FunctionCalls {
			invocations = append(invocations, events.ToolInvocation{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			})
		}
		c.broadcaster.publish(events.NewToolCallRequested(invocations))
	}

	if message.GoAway != nil {
		logger.Warn("peer announced connection termination", "time_left", message.GoAway.TimeLeft)
	}

	content := message.ServerContent
	if content == nil {
		return
	}

	if content.Interrupted {
		c.broadcaster.publish(events.NewAssistantInterrupted())
	}

	for _, chunk := range content.AudioParts() {
		c.broadcaster.publish(events.NewAssistantAudioFrame(chunk))
	}

	if texts := content.TextParts(); len(texts) > 0 {
		parts := make([]events.ContentPart, 0, len(texts))
		for _, text := range texts {
			parts = append(parts, events.ContentPart{Text: text})
		}
		c.broadcaster.publish(events.NewAssistantContent(parts))
	}

	if transcription := content.InputTranscription; transcription != nil {
		c.userAccumulator.add(transcription.Text, transcription.Finished)
		c.broadcaster.publish(events.NewUserTranscript(transcription.Text, transcription.Finished))
	}

	if transcription := content.OutputTranscription; transcription != nil {
		c.assistantAccumulator.add(transcription.Text, transcription.Finished)
		c.broadcaster.publish(events.NewAssistantTranscript(transcription.Text, transcription.Finished))
	}

	if content.TurnComplete {
		c.broadcaster.publish(events.NewTurnComplete())
	}
}

// teardownLocked closes any existing transport. Callers hold c.mu.
func (c *Client) teardownLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
