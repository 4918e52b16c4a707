package workflow_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modelopt/internal/config"
	"modelopt/internal/faults"
	"modelopt/internal/history"
	"modelopt/internal/logging"
	"modelopt/internal/runner"
	"modelopt/internal/workflow"
)

type fixture struct {
	cfg     *config.Config
	record  string
	confDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	toolchain := t.TempDir()
	logDir := t.TempDir()
	record := filepath.Join(t.TempDir(), "record.txt")
	t.Setenv("MODELOPT_TEST_RECORD", record)

	f := &fixture{
		cfg: &config.Config{
			Paths: config.Paths{
				ToolchainDir: toolchain,
				LogDir:       logDir,
				HistoryDB:    filepath.Join(logDir, "history.db"),
			},
			Logging: config.Logging{Format: "console", Level: "error"},
		},
		record:  record,
		confDir: t.TempDir(),
	}
	return f
}

// installTool drops a fake driver that appends its name and argv to the
// record file, echoes a line on each stream, and exits with the given code.
func (f *fixture) installTool(t *testing.T, name string, exitCode int) {
	t.Helper()
	script := `#!/bin/sh
if [ "$1" = "--describe" ]; then
  echo "` + name + `"
  exit 0
fi
echo "` + name + ` $@" >> "$MODELOPT_TEST_RECORD"
echo "` + name + ` out"
echo "` + name + ` err" 1>&2
exit ` + itoa(exitCode)
	path := filepath.Join(f.cfg.Paths.ToolchainDir, name)
	if err := os.WriteFile(path, []byte(script+"\n"), 0o755); err != nil {
		t.Fatalf("install %s: %v", name, err)
	}
}

func (f *fixture) writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(f.confDir, "run.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write run config: %v", err)
	}
	return path
}

func (f *fixture) recordedLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.record)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read record: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func newManager(t *testing.T, f *fixture, opts ...workflow.Option) *workflow.Manager {
	t.Helper()
	m, err := workflow.NewManager(f.cfg, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	return string(rune('0' + i))
}

func TestRunExecutesChainInOrder(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-import-tflite", 0)
	f.installTool(t, "mo-optimize", 0)
	f.installTool(t, "mo-quantize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-quantize = True
mo-import-tflite = True
mo-optimize = True

[mo-import-tflite]
input_path = model.tflite
output_path = model.circle

[mo-optimize]
input_path = model.circle
output_path = opt.circle
fold_cast = True

[mo-quantize]
input_path = opt.circle
tensor_name = t1
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	lines := f.recordedLines(t)
	if len(lines) != 3 {
		t.Fatalf("recorded invocations = %v, want 3", lines)
	}
	wantOrder := []string{"mo-import-tflite", "mo-optimize", "mo-quantize"}
	for i, driver := range wantOrder {
		if !strings.HasPrefix(lines[i], driver+" ") {
			t.Fatalf("invocation %d = %q, want driver %s first", i, lines[i], driver)
		}
	}
	if lines[1] != "mo-optimize --fold_cast --input_path model.circle --output_path opt.circle" {
		t.Fatalf("mo-optimize argv = %q", lines[1])
	}
	if lines[2] != "mo-quantize --input_path opt.circle --tensor_name t1" {
		t.Fatalf("mo-quantize argv = %q", lines[2])
	}
}

func TestRunWritesRunLog(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True

[mo-optimize]
input_path = model.circle
`)

	if err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	entries, err := filepath.Glob(filepath.Join(f.cfg.Paths.LogDir, "modelopt-*.log"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one run log, got %v (%v)", entries, err)
	}
	data, err := os.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, "--input_path model.circle") {
		t.Fatalf("log missing command line: %q", log)
	}
	if !strings.Contains(log, "mo-optimize out\n") {
		t.Fatalf("log missing stdout line: %q", log)
	}
	if !strings.Contains(log, "mo-optimize: mo-optimize err\n") {
		t.Fatalf("log missing prefixed stderr line: %q", log)
	}
}

func TestRunMissingSectionAbortsBeforeLaunch(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)
	f.installTool(t, "mo-quantize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True
mo-quantize = True

[mo-optimize]
input_path = model.circle
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	if !errors.Is(err, faults.ErrConfigSectionMissing) {
		t.Fatalf("expected ErrConfigSectionMissing, got %v", err)
	}
	if lines := f.recordedLines(t); len(lines) != 0 {
		t.Fatalf("processes launched despite resolution failure: %v", lines)
	}
}

func TestRunPropagatesChildExitCode(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 5)
	f.installTool(t, "mo-quantize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True
mo-quantize = True

[mo-optimize]
input_path = model.circle

[mo-quantize]
input_path = opt.circle
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *runner.ExitError, got %v", err)
	}
	if exitErr.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exitErr.Code)
	}

	lines := f.recordedLines(t)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "mo-optimize ") {
		t.Fatalf("chain did not stop at first failure: %v", lines)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)

	store, err := history.Open(f.cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True

[mo-optimize]
input_path = model.circle
`)

	m := newManager(t, f, workflow.WithHistory(store))
	if err := m.Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Driver != "mo-optimize" || records[0].ExitCode != 0 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].RunID == "" {
		t.Fatal("expected run id on record")
	}
	if !strings.Contains(records[0].Command, "--input_path model.circle") {
		t.Fatalf("unexpected command: %q", records[0].Command)
	}
}

func TestRunForwardsVerbose(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True

[mo-optimize]
input_path = model.circle
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath, Verbose: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	lines := f.recordedLines(t)
	if len(lines) != 1 || !strings.Contains(lines[0], "--verbose") {
		t.Fatalf("verbose flag not forwarded: %v", lines)
	}
}

func TestRunRejectsUnknownOptimizationOption(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-optimize = True

[mo-optimize]
no_such_pass = True
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	if err == nil || !strings.Contains(err.Error(), "unknown optimization option") {
		t.Fatalf("expected catalog rejection, got %v", err)
	}
	if lines := f.recordedLines(t); len(lines) != 0 {
		t.Fatalf("processes launched despite validation failure: %v", lines)
	}
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	f := newFixture(t)
	cfgPath := f.writeConfig(t, "[modelopt]\nmo-transmogrify = True\n")

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	if err == nil || !strings.Contains(err.Error(), "unknown driver") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestRunRequiresConfigPath(t *testing.T) {
	f := newFixture(t)
	if err := newManager(t, f).Run(context.Background(), workflow.RunRequest{}); err == nil {
		t.Fatal("expected error without run configuration")
	}
}

func TestRunSectionOverride(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-optimize", 0)

	cfgPath := f.writeConfig(t, `[alt]
mo-optimize = True

[mo-optimize]
input_path = model.circle
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath, Section: "alt"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if lines := f.recordedLines(t); len(lines) != 1 {
		t.Fatalf("expected one invocation, got %v", lines)
	}
}

func TestRunAccumulatedOptionsRepeatPerValue(t *testing.T) {
	f := newFixture(t)
	f.installTool(t, "mo-quantize", 0)

	cfgPath := f.writeConfig(t, `[modelopt]
mo-quantize = True

[mo-quantize]
input_path = opt.circle
tensor_name = t1
`)

	err := newManager(t, f).Run(context.Background(), workflow.RunRequest{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	lines := f.recordedLines(t)
	if len(lines) != 1 || !strings.Contains(lines[0], "--tensor_name t1") {
		t.Fatalf("unexpected argv: %v", lines)
	}
}
