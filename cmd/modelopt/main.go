package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"modelopt/internal/faults"
	"modelopt/internal/runner"
)

const programName = "modelopt"

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// report is the single place that turns an error into a process exit code.
// A child's non-zero exit propagates verbatim with no extra message; its own
// output already explains the failure. Everything else is an orchestration
// error reported as "<program>: <Kind>: <message>" with exit 255.
func report(w io.Writer, err error) int {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(w, "%s: %s: %s\n", programName, faults.Kind(err), err)
	return 255
}
