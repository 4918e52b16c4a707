package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigFileNotFound   = errors.New("configuration file not found")
	ErrConfigSectionMissing = errors.New("configuration section missing")
	ErrLaunchFailure        = errors.New("launch failure")
)

// Wrap tags err with the provided marker while adding operation context. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, operation string, err error) error {
	detail := strings.TrimSpace(operation)
	if detail == "" {
		detail = "driver failure"
	}
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind maps an error chain to its taxonomy name for the top-level report.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrConfigFileNotFound):
		return "ConfigFileNotFound"
	case errors.Is(err, ErrConfigSectionMissing):
		return "ConfigSectionMissing"
	case errors.Is(err, ErrLaunchFailure):
		return "LaunchFailure"
	default:
		return "UnexpectedInternalError"
	}
}
