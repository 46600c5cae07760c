package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVExtractor handles spreadsheet exports. The first row holds column headers;
// every non-empty cell of the following rows becomes a "<Header>: <value>" line,
// so a sheet with Precondition, Step and Expected Result columns reads like a
// written test case.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(data []byte, filename string) (*Document, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{Title: stem(filename), Format: "csv"}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	var lines []string
	for _, row := range records[1:] {
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if j < len(headers) && strings.TrimSpace(headers[j]) != "" {
				cell = strings.TrimSpace(headers[j]) + ": " + cell
			}
			lines = append(lines, cell)
		}
	}
	doc.Text = strings.Join(lines, "\n")
	return doc, nil
}
