// Package runner executes external toolchain drivers and multiplexes their
// output streams.
//
// A Runner launches one argument vector as a subprocess with both output
// streams captured, drains stdout and stderr concurrently so neither pipe can
// stall the child, tags stderr lines with the driver prefix, and tees every
// line to an optional log sink in the order the lines were read. Run blocks
// until the child exits and both streams are drained; a non-zero exit is
// returned as an ExitError so the top-level handler can propagate the code.
package runner
