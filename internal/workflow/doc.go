// Package workflow sequences the optimization toolchain for one run.
//
// A run is described by an INI configuration: a group section selects which
// chain steps execute, and each enabled driver resolves its options from the
// section named after it. The manager resolves and validates every step
// before launching anything, then executes the tools one at a time under a
// single-instance lock, teeing their output to the console and a per-run log
// file and recording each invocation in the history store. The first failure
// aborts the run.
package workflow
