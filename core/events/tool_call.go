package events

const (
	// KindToolCallRequested identifies a batch of model tool invocations.
	KindToolCallRequested Kind = "tool_call.requested"
	// KindToolCallAcknowledged identifies an invocation answered upstream.
	KindToolCallAcknowledged Kind = "tool_call.acknowledged"
)

// ToolInvocation is one structured function call requested by the model.
type ToolInvocation struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolCallRequested carries a batch of tool invocations. The peer expects a
// correlated response for every invocation in the batch.
type ToolCallRequested struct {
	Base
	Invocations []ToolInvocation
}

// NewToolCallRequested creates a tool call requested event.
func NewToolCallRequested(invocations []ToolInvocation) ToolCallRequested {
	return ToolCallRequested{Base: NewBase(KindToolCallRequested), Invocations: invocations}
}

// ToolCallAcknowledged marks that an invocation was responded to.
type ToolCallAcknowledged struct {
	Base
	ID   string
	Name string
}

// NewToolCallAcknowledged creates a tool call acknowledged event.
func NewToolCallAcknowledged(id, name string) ToolCallAcknowledged {
	return ToolCallAcknowledged{Base: NewBase(KindToolCallAcknowledged), ID: id, Name: name}
}
