package sheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-based column number into its A1 letter form
// (1 -> "A", 26 -> "Z", 27 -> "AA").
func ColumnLetter(n int) string {
	if n < 1 {
		return ""
	}

	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}

// QuoteSheet wraps a sheet title in single quotes when A1 notation requires
// it. Embedded quotes are doubled per the A1 grammar.
func QuoteSheet(title string) string {
	if !needsQuoting(title) {
		return title
	}
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func needsQuoting(title string) bool {
	for _, r := range title {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' {
			return true
		}
	}
	return false
}

// SheetRange prefixes an A1 range with a (quoted if necessary) sheet title.
func SheetRange(title, a1 string) string {
	return QuoteSheet(title) + "!" + a1
}

// DataRange returns the A1 range for writing rows×cols cells starting at
// row 2, column 1. Row 1 is reserved for headers and never written.
func DataRange(title string, rows, cols int) string {
	return SheetRange(title, fmt.Sprintf("A2:%s%d", ColumnLetter(cols), 1+rows))
}

// FilterEmptyRows drops rows whose cells are all nil or empty strings.
func FilterEmptyRows(values [][]any) [][]any {
	filtered := make([][]any, 0, len(values))
	for _, row := range values {
		if !rowEmpty(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func rowEmpty(row []any) bool {
	for _, cell := range row {
		if cell == nil {
			continue
		}
		if s, ok := cell.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}
