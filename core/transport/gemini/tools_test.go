package gemini

import (
	"encoding/json"
	"strings"
	"testing"
)

type weatherArgs struct {
	City string `json:"city" jsonschema:"description=City to report the weather for"`
}

func TestParametersForReflectsStructSchema(t *testing.T) {
	schema := ParametersFor(&weatherArgs{})
	if schema == nil {
		t.Fatalf("expected a schema to be reflected")
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("expected schema to marshal, got %v", err)
	}
	if !strings.Contains(string(raw), `"city"`) {
		t.Fatalf("expected city property in schema, got %s", raw)
	}
}

func TestToolsToWireKeepsDeclarationsInOneToolGroup(t *testing.T) {
	wired := toolsToWire([]ToolDeclaration{
		{Name: "get_weather", Description: "Report the weather.", Behavior: BehaviorNonBlocking},
		{Name: "set_timer", Description: "Start a timer."},
	})

	if len(wired) != 1 {
		t.Fatalf("expected one tool group, got %d", len(wired))
	}
	declarations := wired[0].FunctionDeclarations
	if len(declarations) != 2 {
		t.Fatalf("expected two declarations, got %d", len(declarations))
	}
	if declarations[0].Name != "get_weather" || declarations[0].Behavior != BehaviorNonBlocking {
		t.Fatalf("expected declaration fields to carry over, got %+v", declarations[0])
	}
	if declarations[1].Behavior != "" {
		t.Fatalf("expected unset scheduling hint to stay empty, got %q", declarations[1].Behavior)
	}
}
