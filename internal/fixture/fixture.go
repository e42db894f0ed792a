package fixture

import (
	"github.com/fixturelab/snapcheck/internal/dyn"
)

// ToolCallExpectation is one recorded tool invocation inside a transcript.
type ToolCallExpectation struct {
	// ID is the correlation token linking the call to its result message.
	// Unique within one fixture's expectation table.
	ID string `json:"id"`

	// Name is the tool identifier. Never empty and never a ${...} placeholder.
	Name string `json:"name"`

	// Arguments holds the decoded argument payload. Empty (not nil) when the
	// recorded payload failed to decode.
	Arguments dyn.Object `json:"arguments"`

	// Result is the textual result returned for this call in the original
	// transcript. Filled in a second pass when the matching tool-role message
	// is located; remains empty if no such message exists.
	Result string `json:"-"`
}

// TurnExpectation is one user-initiated exchange: the prompt plus everything
// attributed to it until the next user message.
type TurnExpectation struct {
	// Prompt is the user's message text.
	Prompt string `json:"prompt"`

	// ToolCalls are the calls recorded during this turn, in order of appearance.
	ToolCalls []*ToolCallExpectation `json:"tool_calls"`

	// AssistantMessages are the non-empty assistant text fragments emitted
	// during this turn, in order.
	AssistantMessages []string `json:"assistant_messages"`
}

// Fixture is a fully parsed conformance test case.
// Immutable after construction; the validator never mutates it.
type Fixture struct {
	// Name is derived from the source file's base name (extension stripped).
	// Used for filtering and reporting.
	Name string

	// SourcePath is the origin file, retained for diagnostics.
	SourcePath string

	// Turns is the ordered, non-empty turn sequence. A transcript producing
	// zero turns is discarded during parsing, never surfaced as a Fixture.
	Turns []*TurnExpectation

	// Tools is the synthesized catalog: one descriptor per distinct tool
	// name referenced anywhere in the fixture, in first-appearance order.
	Tools []ToolDescriptor

	// SystemMessage is the literal system prompt when the transcript records
	// one as a system-role message. Empty for the usual ${system} placeholder
	// convention, where the prompt is injected by the runtime.
	SystemMessage string
}

// ExpectedCalls flattens the tool calls of every turn, in turn order.
func (f *Fixture) ExpectedCalls() []*ToolCallExpectation {
	var calls []*ToolCallExpectation
	for _, turn := range f.Turns {
		calls = append(calls, turn.ToolCalls...)
	}
	return calls
}

// HasToolCalls reports whether any turn recorded at least one tool call.
// Fixtures without tool calls have nothing to validate and are skipped.
func (f *Fixture) HasToolCalls() bool {
	for _, turn := range f.Turns {
		if len(turn.ToolCalls) > 0 {
			return true
		}
	}
	return false
}
