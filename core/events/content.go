package events

// KindAssistantContent identifies non-audio model content parts.
const KindAssistantContent Kind = "assistant_response.content"

// ContentPart is one text part of a model turn.
type ContentPart struct {
	Text string
}

// AssistantContent carries the non-audio parts of a model turn.
type AssistantContent struct {
	Base
	Parts []ContentPart
}

// NewAssistantContent creates an assistant content event.
func NewAssistantContent(parts []ContentPart) AssistantContent {
	return AssistantContent{Base: NewBase(KindAssistantContent), Parts: parts}
}
