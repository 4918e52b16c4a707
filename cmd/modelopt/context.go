package main

import (
	"log/slog"

	"modelopt/internal/config"
	"modelopt/internal/logging"
)

// commandContext carries the persistent flag values and lazily constructed
// dependencies shared by the subcommands.
type commandContext struct {
	settingsFlag *string
	configFlag   *string
	sectionFlag  *string
	verboseFlag  *bool

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(settings, cfgPath, section *string, verbose *bool) *commandContext {
	return &commandContext{
		settingsFlag: settings,
		configFlag:   cfgPath,
		sectionFlag:  section,
		verboseFlag:  verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, _, _, err := config.Load(*c.settingsFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
