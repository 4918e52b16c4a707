package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ToolchainDir string `toml:"toolchain_dir"`
	LogDir       string `toml:"log_dir"`
	HistoryDB    string `toml:"history_db"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all settings for the modelopt driver layer.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// Sample returns the annotated sample configuration file.
func Sample() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path of the default settings file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/modelopt/config.toml")
}

// Load locates, parses, and validates a settings file. The returned config
// has all path fields expanded and normalized. A missing file yields
// defaults; exists reports whether the file was actually read.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	c := Default()

	resolved, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open settings: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolved, exists, nil
}

// EnsureDirectories creates the directories the driver writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.HistoryDB)}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Validate checks semantic constraints that normalization cannot repair.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.ToolchainDir != "" {
		if c.Paths.ToolchainDir, err = expandPath(c.Paths.ToolchainDir); err != nil {
			return err
		}
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.HistoryDB == "" {
		c.Paths.HistoryDB = filepath.Join(c.Paths.LogDir, "history.db")
	} else if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return err
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat settings: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
