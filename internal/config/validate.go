package config

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrMissingParameters indicates a structurally incomplete configuration
// record. It is always fatal and is raised during pre-flight validation,
// before any side effect.
var ErrMissingParameters = errors.New("missing parameters")

// columnRangePattern matches A1-style column ranges such as "A2:H" or
// "A2:H100". Row numbers on either side are optional.
var columnRangePattern = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]*:[A-Za-z]{1,3}[0-9]*$`)

// ValidateItem checks that the three required fields of a SourceTarget are
// present. Format problems with the clear range are advisory only; see
// ValidateRange.
func ValidateItem(item SourceTarget, context string) error {
	if item.Source == "" {
		return fmt.Errorf("%s: source is required: %w", context, ErrMissingParameters)
	}
	if item.Sheet == "" {
		return fmt.Errorf("%s: sheet is required: %w", context, ErrMissingParameters)
	}
	if item.ClearRange == "" {
		return fmt.Errorf("%s: clear_range is required: %w", context, ErrMissingParameters)
	}
	return nil
}

// ValidateRange checks a declared A1-style clear range. A missing range is
// fatal; a range that is present but does not look like a column range only
// produces a warning. Destinations have survived years of odd-looking but
// working ranges, so format mismatches must not block a run.
func ValidateRange(rng, context string) ([]string, error) {
	if rng == "" {
		return nil, fmt.Errorf("%s: range is required: %w", context, ErrMissingParameters)
	}

	var warnings []string
	if !columnRangePattern.MatchString(rng) {
		warnings = append(warnings, fmt.Sprintf("%s: range %q does not match the expected column range pattern (e.g. \"A2:H\")", context, rng))
	}
	return warnings, nil
}

// ValidateData checks that tabular data is rectangular. Inconsistent row
// lengths are reported as warnings naming every mismatched row index; the
// writer sizes the write from row 0, so ragged data produces short or
// truncated rows rather than an error.
func ValidateData(data [][]any, context string) []string {
	if len(data) == 0 {
		return nil
	}

	width := len(data[0])
	var mismatched []int
	for i, row := range data[1:] {
		if len(row) != width {
			mismatched = append(mismatched, i+1)
		}
	}

	if len(mismatched) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s: rows %v have a different length than row 0 (%d columns)", context, mismatched, width)}
}

// ValidateTargets checks that every item in a batch names a reachable-looking
// destination: a spreadsheet ID and a sheet title. The first violation aborts
// validation of the remaining items.
func ValidateTargets(items []SourceTarget, context string) error {
	for i, item := range items {
		if item.SpreadsheetID == "" {
			return fmt.Errorf("%s: item %d (%s): spreadsheet_id is required: %w", context, i, item.Source, ErrMissingParameters)
		}
		if item.Sheet == "" {
			return fmt.Errorf("%s: item %d (%s): sheet is required: %w", context, i, item.Source, ErrMissingParameters)
		}
	}
	return nil
}
