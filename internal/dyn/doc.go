// Package dyn models the dynamically-typed values that appear in recorded
// tool-call arguments.
//
// Transcripts carry arguments as string-encoded JSON with no schema. The
// harness needs two things from those values: a faithful in-memory form that
// survives round-trips to the runtime under test, and a one-example type
// inference used to synthesize tool parameter schemas. Package dyn provides
// both through a sealed Value variant ({string, int, float, bool, object,
// array}) and the pure TypeOf mapping, so neither depends on reflection or
// map[string]any conventions leaking across package boundaries.
package dyn
