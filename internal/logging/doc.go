// Package logging provides slog helpers used across sheetsync.
//
// It defines the attribute-key vocabulary (operation, label, spreadsheet,
// sheet, range, ...) so log lines stay greppable across packages, plus typed
// attribute constructors that keep call sites short.
package logging
