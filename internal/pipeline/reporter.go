package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/logging"
)

// CheckLevel grades one reporter check.
type CheckLevel string

const (
	CheckPass CheckLevel = "pass"
	CheckWarn CheckLevel = "warn"
	CheckFail CheckLevel = "fail"
)

// Check is one read-only verification of a config item.
type Check struct {
	Name   string
	Level  CheckLevel
	Detail string
}

// SourceStatus reports reachability of a source.
type SourceStatus struct {
	Exists bool
	Items  int
}

// DestinationStatus reports reachability of a destination.
type DestinationStatus struct {
	Exists bool
}

// SourceChecker verifies a source without reading its content.
type SourceChecker interface {
	CheckSource(ctx context.Context, item config.SourceTarget) (*SourceStatus, error)
}

// DestinationChecker verifies a destination without mutating it.
type DestinationChecker interface {
	CheckDestination(ctx context.Context, item config.SourceTarget) (*DestinationStatus, error)
}

// ItemStatus is the dry-run outcome for one config item.
type ItemStatus struct {
	Source string
	Sheet  string
	Checks []Check
}

// Failed reports whether any check failed.
func (s ItemStatus) Failed() bool {
	for _, c := range s.Checks {
		if c.Level == CheckFail {
			return true
		}
	}
	return false
}

// Reporter traverses a config list read-only, checking structure and
// reachability without mutating sources or destinations. Warnings (odd range
// formats, sources with zero items) never count as failures.
type Reporter struct {
	name   string
	source SourceChecker
	dest   DestinationChecker
	logger *slog.Logger
}

// NewReporter creates a read-only status reporter.
func NewReporter(name string, source SourceChecker, dest DestinationChecker, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		name:   name,
		source: source,
		dest:   dest,
		logger: logger,
	}
}

// Report checks every item and returns one status per item. Unlike RunAll,
// a structurally broken item does not abort the traversal; the point of a dry
// run is a complete picture.
func (rp *Reporter) Report(ctx context.Context, items []config.SourceTarget) []ItemStatus {
	statuses := make([]ItemStatus, 0, len(items))
	for i, item := range items {
		status := ItemStatus{Source: item.Source, Sheet: item.Sheet}
		scope := fmt.Sprintf("%s item %d (%s)", rp.name, i, item.Source)

		status.Checks = append(status.Checks, rp.checkStructure(item, scope)...)
		status.Checks = append(status.Checks, rp.checkSource(ctx, item))
		status.Checks = append(status.Checks, rp.checkDestination(ctx, item))

		rp.logger.Debug("dry-run item checked",
			logging.Operation(rp.name),
			logging.Label(item.Source),
			slog.Bool("failed", status.Failed()),
		)
		statuses = append(statuses, status)
	}
	return statuses
}

func (rp *Reporter) checkStructure(item config.SourceTarget, scope string) []Check {
	var checks []Check

	if err := config.ValidateItem(item, scope); err != nil {
		checks = append(checks, Check{Name: "structure", Level: CheckFail, Detail: err.Error()})
	} else if item.SpreadsheetID == "" {
		checks = append(checks, Check{Name: "structure", Level: CheckFail, Detail: scope + ": spreadsheet_id is required"})
	} else {
		checks = append(checks, Check{Name: "structure", Level: CheckPass})
	}

	warnings, err := config.ValidateRange(item.ClearRange, scope)
	switch {
	case err != nil:
		checks = append(checks, Check{Name: "range", Level: CheckFail, Detail: err.Error()})
	case len(warnings) > 0:
		checks = append(checks, Check{Name: "range", Level: CheckWarn, Detail: warnings[0]})
	default:
		checks = append(checks, Check{Name: "range", Level: CheckPass})
	}

	return checks
}

func (rp *Reporter) checkSource(ctx context.Context, item config.SourceTarget) Check {
	status, err := rp.source.CheckSource(ctx, item)
	if err != nil {
		return Check{Name: "source", Level: CheckFail, Detail: err.Error()}
	}
	if status.Items == 0 {
		return Check{Name: "source", Level: CheckWarn, Detail: "source has zero items"}
	}
	return Check{Name: "source", Level: CheckPass, Detail: fmt.Sprintf("%d items", status.Items)}
}

func (rp *Reporter) checkDestination(ctx context.Context, item config.SourceTarget) Check {
	if _, err := rp.dest.CheckDestination(ctx, item); err != nil {
		return Check{Name: "destination", Level: CheckFail, Detail: err.Error()}
	}
	return Check{Name: "destination", Level: CheckPass}
}
