package live

import (
	"encoding/json"

	"github.com/avelinek/lira-core/core/events"
	"github.com/avelinek/lira-core/core/transport/gemini"
)

// toolSuccessResult is the fixed acknowledgement sent for every invocation.
// The model interprets it however it likes; this client performs no real tool
// execution.
func toolSuccessResult() map[string]any {
	return map[string]any{"result": "ok"}
}

// ToolCallBridge answers every inbound tool invocation with a fixed success
// payload correlated by invocation id. Each invocation is logged before the
// batch is acknowledged.
type ToolCallBridge struct {
	client *Client

	unsubscribe func()
}

// NewToolCallBridge subscribes a bridge to the client's event stream.
func NewToolCallBridge(client *Client) *ToolCallBridge {
	bridge := &ToolCallBridge{client: client}
	bridge.unsubscribe = client.Subscribe(bridge.handle)
	return bridge
}

// Close unsubscribes the bridge from the event stream.
func (b *ToolCallBridge) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *ToolCallBridge) handle(event events.Event) {
	request, ok := event.(events.ToolCallRequested)
	if !ok || len(request.Invocations) == 0 {
		return
	}

	responses := make([]gemini.ToolResponse, 0, len(request.Invocations))
	for _, invocation := range request.Invocations {
		arguments, err := json.Marshal(invocation.Args)
		if err != nil {
			arguments = []byte("{}")
		}
		logger.Info("acknowledging tool invocation",
			"id", invocation.ID,
			"name", invocation.Name,
			"arguments", string(arguments),
		)

		responses = append(responses, gemini.ToolResponse{
			ID:       invocation.ID,
			Name:     invocation.Name,
			Response: toolSuccessResult(),
		})
	}

	if err := b.client.SendToolResponse(responses); err != nil {
		logger.Warn("failed to acknowledge tool invocations", "error", err)
		return
	}

	for _, invocation := range request.Invocations {
		b.client.broadcaster.publish(events.NewToolCallAcknowledged(invocation.ID, invocation.Name))
	}
}
