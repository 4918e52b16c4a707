package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"modelopt/internal/catalog"
	"modelopt/internal/config"
	"modelopt/internal/drivers"
	"modelopt/internal/history"
	"modelopt/internal/logging"
	"modelopt/internal/optcfg"
	"modelopt/internal/runner"
)

// GroupSection is the default section naming the chain steps of a run.
const GroupSection = "modelopt"

// chainDrivers lists the non-import drivers in their fixed chain order.
var chainDrivers = []string{
	"mo-optimize",
	"mo-quantize",
	"mo-pack",
	"mo-codegen",
	"mo-profile",
}

// ToolRunner abstracts process execution for testability.
type ToolRunner interface {
	Run(ctx context.Context, inv runner.Invocation) error
}

// RunnerFactory builds the runner used for one driver, given the stderr
// prefix and the per-run log sink.
type RunnerFactory func(prefix string, log io.Writer) ToolRunner

// Option configures the manager.
type Option func(*Manager)

// WithHistory wires the invocation history store.
func WithHistory(store *history.Store) Option {
	return func(m *Manager) {
		m.history = store
	}
}

// WithCatalog overrides the optimization-option catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(m *Manager) {
		if c != nil {
			m.catalog = c
		}
	}
}

// WithRunnerFactory injects a custom process runner (primarily for tests).
func WithRunnerFactory(factory RunnerFactory) Option {
	return func(m *Manager) {
		if factory != nil {
			m.runnerFor = factory
		}
	}
}

// WithImportSections overrides import-driver discovery with a fixed
// {section -> driver name} mapping.
func WithImportSections(sections map[string]string) Option {
	return func(m *Manager) {
		m.imports = sections
	}
}

// Manager drives one toolchain run at a time.
type Manager struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *catalog.Catalog
	history   *history.Store
	imports   map[string]string
	runnerFor RunnerFactory
}

// NewManager constructs a manager over the given settings.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("workflow manager requires settings")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog.Optimizations(),
		runnerFor: func(prefix string, log io.Writer) ToolRunner {
			return runner.New(runner.WithPrefix(prefix), runner.WithLog(log))
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// RunRequest describes one toolchain run.
type RunRequest struct {
	// ConfigPath names the INI run configuration. Required.
	ConfigPath string
	// Section overrides the group section name; defaults to GroupSection.
	Section string
	// Verbose forwards --verbose to every driver.
	Verbose bool
}

type step struct {
	driver  string
	section string
	inv     runner.Invocation
}

// Run resolves, validates, and executes the configured chain. Option
// resolution for every step happens before the first process launches, so a
// missing section aborts the run with nothing started. A non-zero child exit
// surfaces as *runner.ExitError for the top-level handler to propagate.
func (m *Manager) Run(ctx context.Context, req RunRequest) error {
	if req.ConfigPath == "" {
		return errors.New("run configuration is required")
	}

	steps, err := m.plan(ctx, req)
	if err != nil {
		return err
	}

	if err := m.cfg.EnsureDirectories(); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(m.cfg.Paths.LogDir, "modelopt.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return errors.New("another modelopt run is in progress")
	}
	defer lock.Unlock() //nolint:errcheck

	runID := uuid.NewString()
	logPath := filepath.Join(m.cfg.Paths.LogDir, fmt.Sprintf("modelopt-%s.log", time.Now().UTC().Format("20060102-150405")))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return fmt.Errorf("open run log %s: %w", logPath, err)
	}
	defer logFile.Close()

	m.logger.Debug("run started",
		slog.String("run_id", runID),
		slog.String("config", req.ConfigPath),
		slog.String("log", logPath),
	)

	for _, st := range steps {
		if err := m.runStep(ctx, runID, st, logFile); err != nil {
			return err
		}
	}

	m.logger.Debug("run completed", slog.String("run_id", runID))
	return nil
}

func (m *Manager) runStep(ctx context.Context, runID string, st step, logFile io.Writer) error {
	m.logger.Debug("driver started",
		slog.String("run_id", runID),
		slog.String("driver", st.driver),
	)

	started := time.Now().UTC()
	runErr := m.runnerFor(st.driver, logFile).Run(ctx, st.inv)
	finished := time.Now().UTC()

	code := 0
	var exitErr *runner.ExitError
	ranToCompletion := runErr == nil
	if errors.As(runErr, &exitErr) {
		code = exitErr.Code
		ranToCompletion = true
	}
	if ranToCompletion && m.history != nil {
		if _, err := m.history.Append(ctx, history.Record{
			RunID:      runID,
			Driver:     st.driver,
			Command:    st.inv.String(),
			ExitCode:   code,
			StartedAt:  started,
			FinishedAt: finished,
		}); err != nil {
			m.logger.Warn("record invocation history", slog.String("driver", st.driver), slog.Any("error", err))
		}
	}
	return runErr
}

// plan expands the group section into the ordered, fully resolved steps.
func (m *Manager) plan(ctx context.Context, req RunRequest) ([]step, error) {
	groupSection := req.Section
	if groupSection == "" {
		groupSection = GroupSection
	}

	group := optcfg.NewOptionSet()
	if err := optcfg.ResolveOverwrite(group, groupSection, req.ConfigPath); err != nil {
		return nil, err
	}

	imports, err := m.importSections(ctx)
	if err != nil {
		return nil, err
	}

	var importSteps, toolSteps []step
	chainRank := make(map[string]int, len(chainDrivers))
	for i, name := range chainDrivers {
		chainRank[name] = i
	}

	for _, key := range group.Names() {
		enabled, err := parseEnabled(key, group)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}
		switch {
		case strings.HasPrefix(key, drivers.Prefix):
			driver := key
			if mapped, ok := imports[key]; ok {
				driver = mapped
			}
			importSteps = append(importSteps, step{driver: driver, section: key})
		default:
			if _, ok := chainRank[key]; !ok {
				return nil, fmt.Errorf("unknown driver %q in section [%s]", key, groupSection)
			}
			toolSteps = append(toolSteps, step{driver: key, section: key})
		}
	}

	sort.Slice(importSteps, func(i, j int) bool { return importSteps[i].section < importSteps[j].section })
	sort.Slice(toolSteps, func(i, j int) bool { return chainRank[toolSteps[i].driver] < chainRank[toolSteps[j].driver] })

	steps := append(importSteps, toolSteps...)
	if len(steps) == 0 {
		return nil, fmt.Errorf("no drivers enabled in section [%s]", groupSection)
	}

	for i := range steps {
		if err := m.resolveStep(&steps[i], req); err != nil {
			return nil, err
		}
	}
	return steps, nil
}

// resolveStep layers the step's config section onto its options and builds
// the argument vector.
func (m *Manager) resolveStep(st *step, req RunRequest) error {
	args := optcfg.NewOptionSet()
	if req.Verbose {
		args.Set("verbose", "True")
	}
	if err := optcfg.Resolve(args, st.driver, st.section, req.ConfigPath); err != nil {
		return err
	}
	if st.driver == "mo-optimize" {
		if err := m.validateOptimizations(args); err != nil {
			return err
		}
	}
	st.inv = buildInvocation(m.binaryPath(st.driver), args)
	return nil
}

// validateOptimizations rejects enabled pass flags the catalog does not know.
func (m *Manager) validateOptimizations(args *optcfg.OptionSet) error {
	for _, name := range args.Names() {
		if reservedOption(name) || !args.Has(name) {
			continue
		}
		values := args.Values(name)
		if len(values) != 1 || !booleanTrue(values[0]) {
			continue
		}
		if _, ok := m.catalog.Lookup(name); !ok {
			return fmt.Errorf("unknown optimization option %q", name)
		}
	}
	return nil
}

func (m *Manager) importSections(ctx context.Context) (map[string]string, error) {
	if m.imports != nil {
		return m.imports, nil
	}
	if m.cfg.Paths.ToolchainDir == "" {
		return nil, nil
	}
	result, err := drivers.NewScanner(m.cfg.Paths.ToolchainDir).Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, skip := range result.Skips {
		m.logger.Debug("import driver skipped",
			slog.String("candidate", skip.Name),
			slog.String("reason", skip.Reason),
		)
	}
	return result.Sections(), nil
}

func (m *Manager) binaryPath(driver string) string {
	if m.cfg.Paths.ToolchainDir == "" {
		return driver
	}
	return filepath.Join(m.cfg.Paths.ToolchainDir, driver)
}

// buildInvocation maps resolved options onto the driver's command line.
// Boolean-true values become bare flags, everything else becomes
// "--key value"; accumulated options repeat once per collected value. Keys
// are emitted in sorted order so invocations are deterministic regardless of
// config layout.
func buildInvocation(binary string, args *optcfg.OptionSet) runner.Invocation {
	b := invokeBuilder(binary, args)
	return runner.Invocation(b.Args())
}

func reservedOption(name string) bool {
	switch name {
	case "config", "section", "verbose":
		return true
	default:
		return false
	}
}

func booleanTrue(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

func booleanFalse(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no", "off":
		return true
	default:
		return false
	}
}

// parseEnabled interprets a group-section value as a step toggle.
func parseEnabled(key string, group *optcfg.OptionSet) (bool, error) {
	value, _ := group.Get(key)
	switch {
	case booleanTrue(value):
		return true, nil
	case booleanFalse(value):
		return false, nil
	default:
		return false, fmt.Errorf("section value for %q is not a boolean: %q", key, value)
	}
}
