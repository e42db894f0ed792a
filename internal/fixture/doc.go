// Package fixture parses recorded conversation transcripts into conformance
// test cases.
//
// A transcript is a YAML document holding role-tagged messages (user,
// assistant, tool) captured from a real agent session. The parser
// reconstructs the user turns, the tool calls the agent issued during each
// turn, and the results those calls produced, then synthesizes a tool
// catalog by inferring parameter types from the recorded arguments. The
// resulting Fixture is immutable input for the replay driver and validator.
//
// Parsing is deliberately best-effort: the transcript format is an external
// contract full of fields the harness does not model, and a malformed or
// irrelevant document is a skip, never a run-level failure.
package fixture
