package gemini

import (
	"github.com/invopop/jsonschema"
	"github.com/jinzhu/copier"
)

// Behavior is the scheduling hint attached to a function declaration.
type Behavior string

const (
	// BehaviorBlocking makes the model wait for the response before
	// continuing its turn.
	BehaviorBlocking Behavior = "BLOCKING"
	// BehaviorNonBlocking lets the model keep generating while the call is
	// outstanding.
	BehaviorNonBlocking Behavior = "NON_BLOCKING"
)

// ToolDeclaration describes one function the model may invoke during the
// session.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Behavior    Behavior
}

// ParametersFor derives a parameter schema from a Go struct type.
func ParametersFor(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return reflector.Reflect(v)
}

type toolWire struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations,omitempty"`
}

type functionDeclaration struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Behavior    Behavior           `json:"behavior,omitempty"`
}

func toolsToWire(declarations []ToolDeclaration) []toolWire {
	var wired []functionDeclaration
	copier.Copy(&wired, declarations)
	return []toolWire{{FunctionDeclarations: wired}}
}
