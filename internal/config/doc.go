// Package config loads, normalizes, and validates modelopt's own settings.
//
// This is the driver layer's configuration (toolchain location, log
// directory, history database, log routing), not the per-run INI file that
// carries tool options; that file is handled by internal/optcfg. Defaults
// follow XDG conventions and tilde paths are expanded, so downstream code
// always receives absolute, sanitized paths.
package config
