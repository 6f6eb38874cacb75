// Package logging builds the slog loggers used across the engine and CLI.
//
// It provides a single constructor that honours the configured level and
// format (console or json), typed attribute helpers so call sites stay
// terse, and a no-op logger for tests. Components obtain a child logger
// via NewComponentLogger so every record carries a stable component field.
package logging
