package importer

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"sauconv/internal/label"
)

// Layout declares where the header and data rows of one sheet version sit.
// Row indexes are 0-based positions in the raw grid.
type Layout struct {
	Name      string `validate:"required"`
	Sheet     string `validate:"required"`
	HeaderRow int    `validate:"gte=0"`
	DataStart int    `validate:"gtfield=HeaderRow"`
	// DataEnd is exclusive; zero reads to the last row of the sheet.
	DataEnd int `validate:"omitempty,gtfield=DataStart"`
	// Columns names the columns positionally. When empty the header row names them.
	Columns []string `validate:"dive,required"`
	// KeyColumn drops rows whose key cell is missing (blank separator rows).
	KeyColumn string
	// Required lists header columns that must exist for the layout to apply.
	Required []string `validate:"dive,required"`
	Filter   *Filter
}

// Filter keeps only the rows whose Column equals Equals.
type Filter struct {
	Column string `validate:"required"`
	Equals string `validate:"required"`
}

var layoutValidator = validator.New()

func (l Layout) Validate() error {
	if err := layoutValidator.Struct(l); err != nil {
		return fmt.Errorf("invalid layout %s: %w", l.Name, err)
	}
	return nil
}

// Locate slices the declared data window out of grid and names its cells.
// Row width is not checked against the header; absent cells read as missing.
func Locate(grid Grid, layout Layout) ([]Record, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	headers, err := columnNames(grid, layout)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		if header != "" {
			present[header] = struct{}{}
		}
	}
	needed := append([]string(nil), layout.Required...)
	if layout.KeyColumn != "" {
		needed = append(needed, layout.KeyColumn)
	}
	if layout.Filter != nil {
		needed = append(needed, layout.Filter.Column)
	}
	for _, column := range needed {
		if _, ok := present[normalizeHeader(column)]; !ok {
			return nil, fmt.Errorf("%w: %q in sheet %s (layout %s)", ErrColumnNotFound, column, layout.Sheet, layout.Name)
		}
	}

	end := len(grid)
	if layout.DataEnd > 0 && layout.DataEnd < end {
		end = layout.DataEnd
	}

	var want string
	if layout.Filter != nil {
		want = label.Clean(layout.Filter.Equals)
	}

	records := make([]Record, 0, max(end-layout.DataStart, 0))
	for i := layout.DataStart; i < end; i++ {
		row := grid[i]
		values := make(map[string]Cell, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if _, seen := values[header]; seen {
				continue
			}
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}

		record := Record{Sheet: layout.Sheet, RowNumber: i + 1, Values: values}
		if layout.KeyColumn != "" && record.Get(layout.KeyColumn) == "" {
			continue
		}
		if layout.Filter != nil && label.Clean(record.Get(layout.Filter.Column)) != want {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func columnNames(grid Grid, layout Layout) ([]string, error) {
	if len(layout.Columns) > 0 {
		names := make([]string, len(layout.Columns))
		for i, column := range layout.Columns {
			names[i] = normalizeHeader(column)
		}
		return names, nil
	}

	if layout.HeaderRow >= len(grid) {
		return nil, fmt.Errorf("sheet %s has no header row %d (layout %s)", layout.Sheet, layout.HeaderRow, layout.Name)
	}
	header := grid[layout.HeaderRow]
	names := make([]string, len(header))
	for i, cell := range header {
		names[i] = normalizeHeader(label.Clean(string(cell)))
	}
	return names, nil
}
