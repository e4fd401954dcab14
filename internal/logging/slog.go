package logging

import (
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation   = "operation"
	KeyAccount     = "account"
	KeyLabel       = "label"
	KeySpreadsheet = "spreadsheet"
	KeySheet       = "sheet"
	KeyRange       = "range"
	KeyRows        = "rows"
	KeyAttempt     = "attempt"
	KeyError       = "error"
	KeyRun         = "run"
)

// Setup configures the default slog logger for CLI output and returns it.
// Debug mode lowers the level and adds source positions.
func Setup(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithAccount returns a logger with the account attribute set.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(slog.String(KeyAccount, account))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Label returns a slog attribute for a Gmail label name.
func Label(label string) slog.Attr {
	return slog.String(KeyLabel, label)
}

// Spreadsheet returns a slog attribute for a spreadsheet ID.
func Spreadsheet(id string) slog.Attr {
	return slog.String(KeySpreadsheet, id)
}

// Sheet returns a slog attribute for a sheet title.
func Sheet(title string) slog.Attr {
	return slog.String(KeySheet, title)
}

// Range returns a slog attribute for an A1-style range.
func Range(a1 string) slog.Attr {
	return slog.String(KeyRange, a1)
}

// Rows returns a slog attribute for a row count.
func Rows(n int) slog.Attr {
	return slog.Int(KeyRows, n)
}

// Attempt returns a slog attribute for a retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// Run returns a slog attribute for a batch run ID.
func Run(id string) slog.Attr {
	return slog.String(KeyRun, id)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
