package importer

import (
	"strings"
)

// Record is one located data row with cells addressed by column name.
type Record struct {
	Sheet     string
	RowNumber int
	Values    map[string]Cell
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(string(value))
		}
	}
	return ""
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}

// NewRecord builds a record from column names as they would appear in a header.
func NewRecord(sheet string, rowNumber int, values map[string]string) Record {
	cells := make(map[string]Cell, len(values))
	for key, value := range values {
		cells[normalizeHeader(key)] = Cell(value)
	}
	return Record{Sheet: sheet, RowNumber: rowNumber, Values: cells}
}
