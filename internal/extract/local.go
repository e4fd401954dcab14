package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mwalther/sheetsync/internal/pipeline"
)

// isXLSX reports whether the artifact is an OOXML workbook that can be parsed
// in-process. Legacy .xls files need the conversion backend.
func isXLSX(artifact *pipeline.Artifact) bool {
	if artifact.MimeType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(artifact.Filename), ".xlsx")
}

// parseXLSX reads the first sheet of an OOXML workbook and returns its rows
// below the header. Rows are padded to the header width because excelize
// trims trailing empty cells.
func parseXLSX(artifact *pipeline.Artifact) (pipeline.TabularData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return pipeline.TabularData{}, nil
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetList[0], err)
	}

	if len(rows) <= 1 {
		return pipeline.TabularData{}, nil
	}

	width := len(rows[0])
	data := make(pipeline.TabularData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]any, width)
		for i := 0; i < width; i++ {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		data = append(data, cells)
	}
	return data, nil
}
