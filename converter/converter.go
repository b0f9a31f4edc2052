package converter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sauconv/importer"
	"sauconv/output"
)

// Converter turns one source workbook into one dataset.
type Converter interface {
	Name() string
	Description() string
	DefaultOutput() string
	// Sheets lists the sheets the converter reads.
	Sheets() []string
	Convert(ctx context.Context, path string) (*Result, error)
}

type Result struct {
	Dataset output.Dataset
	Summary Summary
}

// Options tunes converters whose layout depends on the source edition.
type Options struct {
	// FirstYear and LastYear bound the SAA year columns, inclusive.
	FirstYear int
	LastYear  int
	// Metropolitan reads national RA2020 figures from FRMETRO instead of FRANCE.
	Metropolitan bool
}

const (
	DefaultFirstYear = 2016
	DefaultLastYear  = 2024
)

func DefaultOptions() Options {
	return Options{FirstYear: DefaultFirstYear, LastYear: DefaultLastYear}
}

func SupportedNames() []string {
	return []string{"ra2020", "saa"}
}

func ByName(name string, options Options) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ra2020":
		return NewClassConverter(options), nil
	case "saa":
		return NewSeriesConverter(options)
	default:
		return nil, fmt.Errorf("unsupported converter: %s (supported: %s)", name, strings.Join(SupportedNames(), ", "))
	}
}

// Detect picks the converter whose sheets are all present in the workbook.
func Detect(sheetNames []string, options Options) (Converter, error) {
	available := make(map[string]struct{}, len(sheetNames))
	for _, name := range sheetNames {
		available[name] = struct{}{}
	}

	for _, name := range SupportedNames() {
		conv, err := ByName(name, options)
		if err != nil {
			return nil, err
		}
		matches := true
		for _, sheet := range conv.Sheets() {
			if _, ok := available[sheet]; !ok {
				matches = false
				break
			}
		}
		if matches {
			return conv, nil
		}
	}
	return nil, fmt.Errorf("%w: no converter matches sheets %s", importer.ErrSheetNotFound, strings.Join(sheetNames, ", "))
}

func locate(ctx context.Context, workbook *importer.Workbook, layout importer.Layout) ([]importer.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid, err := workbook.Sheet(layout.Sheet)
	if err != nil {
		return nil, err
	}
	records, err := importer.Locate(grid, layout)
	if err != nil {
		return nil, err
	}

	slog.Debug("located rows", "layout", layout.Name, "sheet", layout.Sheet, "sheet_rows", len(grid), "records", len(records))
	return records, nil
}
