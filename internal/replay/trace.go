package replay

import (
	"encoding/json"
	"fmt"

	"github.com/fixturelab/snapcheck/internal/dyn"
)

// rawOutputPreview bounds how much runtime stdout is embedded in diagnostics
// when the trace document fails to parse.
const rawOutputPreview = 500

// Trace is the runtime's reported outcome: either an error diagnostic or the
// tool calls actually observed per turn during replay.
type Trace struct {
	// Err is the failure diagnostic. Non-empty means the replay produced no
	// usable turn data and validation must fail immediately.
	Err string

	// Turns are the replayed turns in order, each with its observed calls.
	Turns []TraceTurn
}

// TraceTurn is one replayed turn.
type TraceTurn struct {
	ToolCalls []ObservedCall `json:"tool_calls"`
}

// ObservedCall is one tool invocation the runtime reports having made.
type ObservedCall struct {
	Name      string     `json:"name"`
	Arguments dyn.Object `json:"arguments"`
}

// Failed reports whether the trace carries an error instead of turn data.
func (t *Trace) Failed() bool {
	return t.Err != ""
}

// ObservedCalls flattens the calls of every turn into one collection.
// Turn alignment is deliberately discarded: the validator matches on
// presence anywhere in the trace.
func (t *Trace) ObservedCalls() []ObservedCall {
	var calls []ObservedCall
	for _, turn := range t.Turns {
		calls = append(calls, turn.ToolCalls...)
	}
	return calls
}

// errorTrace builds a Trace carrying a failure diagnostic.
func errorTrace(format string, args ...any) *Trace {
	return &Trace{Err: fmt.Sprintf(format, args...)}
}

// decodeTrace parses the runtime's stdout into a Trace.
//
// The contract allows two shapes: {"turns": [...]} on success or
// {"error": "..."} for a runtime-detected failure. Anything else is itself
// an error trace embedding a truncated prefix of the raw output.
func decodeTrace(stdout []byte) *Trace {
	var doc struct {
		Error string      `json:"error"`
		Turns []TraceTurn `json:"turns"`
	}
	if err := json.Unmarshal(stdout, &doc); err != nil {
		return errorTrace("invalid trace output: %v\nOutput: %s", err, truncate(string(stdout), rawOutputPreview))
	}

	if doc.Error != "" {
		return &Trace{Err: doc.Error}
	}
	return &Trace{Turns: doc.Turns}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
