// Package logging builds the slog loggers used across the sorter. Records go
// to stderr so the report printed on stdout stays clean.
package logging
