package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"modelopt/internal/faults"
)

// Invocation is the fully resolved argument vector for one external tool:
// the driver path followed by its argument strings. It is built once,
// executed once, and never mutated after launch.
type Invocation []string

// String renders the invocation the way it is recorded in the run log.
func (inv Invocation) String() string {
	return strings.Join(inv, " ")
}

// ExitError reports a child process that ran to completion with a non-zero
// exit code. The code is propagated verbatim by the top-level handler and is
// never re-wrapped with additional messages.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Option configures a Runner.
type Option func(*Runner)

// WithPrefix tags every stderr line with "<prefix>: " so output remains
// attributable to its originating tool.
func WithPrefix(prefix string) Option {
	return func(r *Runner) {
		r.prefix = prefix
	}
}

// WithLog tees every line from either stream, after prefixing, to sink.
func WithLog(sink io.Writer) Option {
	return func(r *Runner) {
		if sink != nil {
			r.log = sink
		}
	}
}

// WithConsole overrides the console writers (primarily for tests).
func WithConsole(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// Runner executes invocations one at a time. Instances hold no state across
// runs and may be reused.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	log    io.Writer
	prefix string
}

// New constructs a Runner writing to the process console by default.
func New(opts ...Option) *Runner {
	r := &Runner{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run launches the invocation and blocks until the child exits and both
// output streams are drained. The command line is recorded to the log sink
// before launch. A failure to start the process is tagged ErrLaunchFailure;
// a non-zero exit comes back as *ExitError with the child's code.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	if len(inv) == 0 {
		return errors.New("empty invocation")
	}
	if r.log != nil {
		fmt.Fprintln(r.log, inv.String())
	}

	cmd := exec.CommandContext(ctx, inv[0], inv[1:]...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return faults.Wrap(faults.ErrLaunchFailure, fmt.Sprintf("start %s", inv[0]), err)
	}

	// Writes go through one mutex so lines from the two streams never
	// interleave mid-line and the log preserves the order lines were read.
	// The console writers are unbuffered os.Files by default, so each line
	// reaches an external observer as soon as it is written.
	var mu sync.Mutex
	emit := func(line string, console io.Writer, prefix string) {
		if prefix != "" {
			line = prefix + ": " + line
		}
		mu.Lock()
		defer mu.Unlock()
		io.WriteString(console, line) //nolint:errcheck
		if r.log != nil {
			io.WriteString(r.log, line) //nolint:errcheck
		}
	}

	var wg sync.WaitGroup
	var readErr error
	var once sync.Once

	drain := func(src io.Reader, console io.Writer, prefix string) {
		defer wg.Done()
		reader := bufio.NewReader(src)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				emit(line, console, prefix)
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					once.Do(func() { readErr = err })
				}
				return
			}
		}
	}

	wg.Add(2)
	go drain(stdout, r.stdout, "")
	go drain(stderr, r.stderr, r.prefix)
	wg.Wait()

	waitErr := cmd.Wait()
	if readErr != nil {
		return fmt.Errorf("read %s output: %w", inv[0], readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Terminated by signal; mirror the shell convention.
				code = 1
			}
			return &ExitError{Code: code}
		}
		return fmt.Errorf("wait %s: %w", inv[0], waitErr)
	}
	return nil
}
