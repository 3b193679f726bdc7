package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	defaultHost = "generativelanguage.googleapis.com"
	defaultPath = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	inputAudioMimeType = "audio/pcm;rate=16000"
)

// Conn is one live duplex connection to the generative peer. It owns the
// websocket exclusively and is replaced, never reused, across reconnects.
type Conn struct {
	ws *websocket.Conn

	// writeMu serializes outbound frames; the websocket allows only one
	// concurrent writer.
	writeMu sync.Mutex

	closeOnce sync.Once
}

type dialOptions struct {
	endpoint string
}

type DialOption func(*dialOptions)

// WithEndpoint overrides the peer endpoint, primarily for tests.
func WithEndpoint(endpoint string) DialOption {
	return func(o *dialOptions) { o.endpoint = endpoint }
}

// Dial opens the socket and transmits the session setup. The peer's
// acknowledgement is not awaited here; the first Read returns it.
func Dial(ctx context.Context, apiKey string, setup Setup, opts ...DialOption) (*Conn, error) {
	options := dialOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	endpoint := options.endpoint
	if endpoint == "" {
		if apiKey == "" {
			return nil, fmt.Errorf("api key not provided")
		}

		urlValues := url.Values{}
		urlValues.Set("key", apiKey)
		endpoint = (&url.URL{
			Scheme:   "wss",
			Host:     defaultHost,
			Path:     defaultPath,
			RawQuery: urlValues.Encode(),
		}).String()
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to peer: %w", err)
	}

	conn := &Conn{ws: ws}
	if err := conn.write(clientMessage{Setup: &setup}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send session setup: %w", err)
	}

	return conn, nil
}

// Read blocks for the next inbound frame and decodes it into exactly one
// server message. A *DecodeError means the frame was malformed but the
// connection is still usable; any other error means the transport is gone.
func (c *Conn) Read() (*ServerMessage, error) {
	msgType, raw, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}

	switch msgType {
	case websocket.TextMessage, websocket.BinaryMessage:
		return decodeServerMessage(raw)
	default:
		return nil, &DecodeError{Message: fmt.Sprintf("unexpected websocket message type %d", msgType)}
	}
}

// WriteAudio transmits one captured PCM chunk as realtime input.
func (c *Conn) WriteAudio(pcm []byte) error {
	return c.write(clientMessage{
		RealtimeInput: &realtimeInput{
			Audio: &inlineData{
				MimeType: inputAudioMimeType,
				Data:     base64.StdEncoding.EncodeToString(pcm),
			},
		},
	})
}

// WriteToolResponse transmits a batch of correlated function responses.
func (c *Conn) WriteToolResponse(responses []ToolResponse) error {
	wired := make([]functionResponse, 0, len(responses))
	for _, response := range responses {
		wired = append(wired, functionResponse{
			ID:       response.ID,
			Name:     response.Name,
			Response: response.Response,
		})
	}

	return c.write(clientMessage{ToolResponse: &toolResponseWire{FunctionResponses: wired}})
}

func (c *Conn) write(message clientMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(message)
}

// Close tears the socket down. Idempotent.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.ws.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

func decodeBase64(data string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, &DecodeError{Message: "failed to decode inline payload", Cause: err}
	}
	return decoded, nil
}
