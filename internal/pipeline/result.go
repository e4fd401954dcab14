package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// ItemResult is the outcome of one config item within a batch. It is created
// once at the end of the item's run and never mutated afterwards.
type ItemResult struct {
	Success     bool
	Source      string
	Sheet       string
	RowsWritten int
	Error       string
	Timestamp   time.Time
}

// BatchResult aggregates the per-item outcomes of one orchestration call.
type BatchResult struct {
	RunID      string
	Results    []ItemResult
	Successful int
	Failed     int
}

// Summary renders a short human-readable report of the batch.
func (b *BatchResult) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s: %d items, %d succeeded, %d failed\n", b.RunID, len(b.Results), b.Successful, b.Failed)
	for _, r := range b.Results {
		if r.Success {
			fmt.Fprintf(&sb, "  ok   %-40s -> %s (%d rows)\n", r.Source, r.Sheet, r.RowsWritten)
		} else {
			fmt.Fprintf(&sb, "  FAIL %-40s %s\n", r.Source, r.Error)
		}
	}
	return sb.String()
}
