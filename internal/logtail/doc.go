// Package logtail reads the end of the racesearch log file.
//
// The TUI owns the terminal, so its diagnostics go to a file written by the
// logging package with slog's text handler. Read returns the last lines of
// that file, optionally dropping records below a level, for the
// `racesearch logs` command.
package logtail
