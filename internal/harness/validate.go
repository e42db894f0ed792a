package harness

import (
	"fmt"

	"github.com/fixturelab/snapcheck/internal/fixture"
	"github.com/fixturelab/snapcheck/internal/replay"
)

// Validate compares an execution trace against a fixture's expectations.
//
// An error trace fails immediately with a single issue; no further checks
// run because there is no turn data to inspect. Otherwise every expected
// tool call must have at least one observed call with the same name
// anywhere in the trace. Turn placement and argument contents are not
// compared. The verdict is success exactly when zero issues were produced.
func Validate(f *fixture.Fixture, trace *replay.Trace) (bool, []string) {
	if trace.Failed() {
		return false, []string{fmt.Sprintf("replay error: %s", trace.Err)}
	}

	observedNames := make(map[string]bool)
	for _, call := range trace.ObservedCalls() {
		observedNames[call.Name] = true
	}

	var issues []string
	for _, expected := range f.ExpectedCalls() {
		if !observedNames[expected.Name] {
			issues = append(issues, fmt.Sprintf("expected tool call %q not observed", expected.Name))
		}
	}

	return len(issues) == 0, issues
}
