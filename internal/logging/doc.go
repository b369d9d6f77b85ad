// Package logging constructs the slog loggers used across the CLI.
//
// Two formats are supported: a human-oriented console handler that writes
// aligned, optionally colorized lines to stderr, and a JSON handler for
// machine consumption. Log output never goes to stdout; stdout is reserved
// for command results.
package logging
