package fixture

import (
	"fmt"

	"github.com/fixturelab/snapcheck/internal/dyn"
)

// defaultToolResult is the scripted result used when a tool's recorded call
// never received a tool-role result message.
const defaultToolResult = "OK"

// ToolDescriptor is one entry in the synthesized tool catalog: the name,
// an inferred parameter schema, and the scripted result the runtime under
// test should return when the tool is invoked during replay.
type ToolDescriptor struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ParametersSchema ParameterSchema `json:"parameters_schema"`
	Result           string          `json:"result"`
}

// ParameterSchema is a JSON-Schema-like object schema for tool parameters.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
}

// PropertySchema types a single parameter.
type PropertySchema struct {
	Type dyn.TypeTag `json:"type"`
}

// synthesizeCatalog builds one descriptor per distinct tool name referenced
// anywhere in the fixture, in first-appearance order. Calls recorded before
// the first user turn have no turn to belong to but still name a tool the
// runtime will need.
//
// The schema is a best-effort structural inference from a single example:
// the first call encountered for a name supplies both the parameter types
// and the scripted result, and later calls with the same name are ignored
// even when they carry additional or differently-typed arguments. Merging
// shapes across calls would invent schemas no single recorded call ever
// exhibited, so the first example wins.
func synthesizeCatalog(calls []*ToolCallExpectation) []ToolDescriptor {
	var (
		order     []string
		firstCall = make(map[string]*ToolCallExpectation)
	)
	for _, call := range calls {
		if _, seen := firstCall[call.Name]; seen {
			continue
		}
		firstCall[call.Name] = call
		order = append(order, call.Name)
	}

	tools := make([]ToolDescriptor, 0, len(order))
	for _, name := range order {
		call := firstCall[name]

		result := call.Result
		if result == "" {
			result = defaultToolResult
		}

		tools = append(tools, ToolDescriptor{
			Name:             name,
			Description:      fmt.Sprintf("Test tool: %s", name),
			ParametersSchema: inferSchema(call.Arguments),
			Result:           result,
		})
	}
	return tools
}

// inferSchema types each argument key from its example value.
func inferSchema(args dyn.Object) ParameterSchema {
	schema := ParameterSchema{
		Type:       "object",
		Properties: make(map[string]PropertySchema, len(args)),
	}
	for key, val := range args {
		schema.Properties[key] = PropertySchema{Type: dyn.TypeOf(val)}
	}
	return schema
}
