// Package harness runs fixtures end to end and judges the outcome.
//
// For each fixture it chains the parser, the replay driver, and the
// validator, producing a per-fixture verdict and an overall summary. The
// validation policy is deliberately lenient: a non-deterministic agent may
// phrase arguments differently or shift work between turns while remaining
// behaviorally correct, so the only stable conformance signal is that every
// expected tool was invoked by name at least once somewhere in the trace.
// Exact-argument or turn-aligned matching would drown real regressions in
// false failures.
package harness
