// Package drivers discovers import-driver executables installed in the
// toolchain directory.
//
// A candidate is any executable file whose name starts with the import-driver
// prefix. Each candidate is probed through its --describe contract: the
// executable prints the configuration section it serves on stdout. Candidates
// that fail the probe are recorded as skips with a reason rather than being
// silently dropped, so broken installs stay distinguishable from non-drivers.
package drivers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Prefix marks import-driver executables.
const Prefix = "mo-import-"

const probeTimeout = 5 * time.Second

// Driver is one recognized import driver.
type Driver struct {
	Section string
	Name    string
	Path    string
}

// Skip is a candidate that was not recognized as a driver, with the reason.
type Skip struct {
	Name   string
	Reason string
}

// ScanResult aggregates one directory scan.
type ScanResult struct {
	Drivers []Driver
	Skips   []Skip
}

// Sections returns the {config section -> driver name} mapping the driver
// layer consumes.
func (r ScanResult) Sections() map[string]string {
	out := make(map[string]string, len(r.Drivers))
	for _, d := range r.Drivers {
		out[d.Section] = d.Name
	}
	return out
}

// Prober resolves a candidate executable to the config section it serves.
type Prober interface {
	Describe(ctx context.Context, path string) (string, error)
}

type execProber struct{}

func (execProber) Describe(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--describe").Output() //nolint:gosec
	if err != nil {
		return "", err
	}
	section := strings.TrimSpace(string(out))
	if section == "" {
		return "", fmt.Errorf("empty describe output")
	}
	return section, nil
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProber injects a custom probe implementation (primarily for tests).
func WithProber(p Prober) Option {
	return func(s *Scanner) {
		if p != nil {
			s.prober = p
		}
	}
}

// Scanner locates import drivers under one directory.
type Scanner struct {
	dir    string
	prober Prober
}

// NewScanner constructs a scanner over dir.
func NewScanner(dir string, opts ...Option) *Scanner {
	s := &Scanner{dir: dir, prober: execProber{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan probes every prefixed candidate in the directory. Candidates are
// visited in name order so results are deterministic. A missing directory
// yields an empty result rather than an error: an install without import
// drivers is a valid install.
func (s *Scanner) Scan(ctx context.Context) (ScanResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ScanResult{}, nil
		}
		return ScanResult{}, fmt.Errorf("scan driver directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
		byName[entry.Name()] = entry
	}
	sort.Strings(names)

	var result ScanResult
	for _, name := range names {
		entry := byName[name]
		if entry.IsDir() || !strings.HasPrefix(name, Prefix) {
			continue
		}
		path := filepath.Join(s.dir, name)
		info, err := entry.Info()
		if err != nil {
			result.Skips = append(result.Skips, Skip{Name: name, Reason: fmt.Sprintf("stat: %v", err)})
			continue
		}
		if info.Mode()&0o111 == 0 {
			result.Skips = append(result.Skips, Skip{Name: name, Reason: "not executable"})
			continue
		}
		section, err := s.prober.Describe(ctx, path)
		if err != nil {
			result.Skips = append(result.Skips, Skip{Name: name, Reason: fmt.Sprintf("describe: %v", err)})
			continue
		}
		result.Drivers = append(result.Drivers, Driver{Section: section, Name: name, Path: path})
	}
	return result, nil
}
