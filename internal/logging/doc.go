// Package logging assembles the structured slog loggers used across the
// driver layer.
//
// It centralizes level parsing and output routing (stderr plus an optional
// file) so orchestration events carry a consistent shape. Tool output itself
// never flows through slog; the process runner tees it verbatim.
package logging
