package importer

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Cell is a raw sheet value. An empty cell is missing data.
type Cell string

// Grid holds every row of a sheet in sheet order. Rows may be ragged.
type Grid [][]Cell

// Workbook gives read access to the sheets of one spreadsheet file.
type Workbook struct {
	path string
	file *excelize.File
}

func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	return &Workbook{path: path, file: file}, nil
}

func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns the raw grid of the named sheet without any number formatting.
func (w *Workbook) Sheet(name string) (Grid, error) {
	if index, err := w.file.GetSheetIndex(name); err != nil || index < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, w.path)
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", name, err)
	}

	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for col, value := range row {
			cells[col] = Cell(value)
		}
		grid[i] = cells
	}
	return grid, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
