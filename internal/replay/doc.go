// Package replay drives the runtime under test.
//
// It projects a parsed fixture into the neutral replay configuration the
// runtime consumes, invokes the runtime executable with a path to that
// configuration, and decodes the execution trace the runtime reports on
// stdout. Every failure mode of the invocation (non-zero exit, timeout,
// unparseable output) is folded into an error-carrying Trace so the
// validator has exactly one input shape to judge.
package replay
