package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else if _, err := file.NewSheet(name); err != nil {
			t.Fatalf("create sheet %s: %v", name, err)
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := file.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row %d: %v", i+1, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestWorkbook_SheetReturnsRawValues(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, map[string][][]any{
		"FRANCE": {
			{"Tranches de SAU"},
			{"Classe", "Nombre", "SAU"},
			{"[0,20 ha)", 150000, 1234567.891},
		},
	})

	workbook, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	grid, err := workbook.Sheet("FRANCE")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid))
	}
	if got := grid[2][1]; got != "150000" {
		t.Fatalf("unexpected count cell: %q", got)
	}
	if got := grid[2][2]; got != "1234567.891" {
		t.Fatalf("unexpected area cell: %q", got)
	}
	if names := workbook.SheetNames(); len(names) != 1 || names[0] != "FRANCE" {
		t.Fatalf("unexpected sheet names: %v", names)
	}
}

func TestWorkbook_KeepsBlankRowsInPlace(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, map[string][][]any{
		"DEP": {
			{"title"},
			{},
			{"a", "b"},
		},
	})

	workbook, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	grid, err := workbook.Sheet("DEP")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(grid) != 3 || len(grid[1]) != 0 || grid[2][0] != "a" {
		t.Fatalf("unexpected grid: %#v", grid)
	}
}

func TestOpenWorkbook_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestWorkbook_MissingSheet(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, map[string][][]any{"FRANCE": {{"x"}}})
	workbook, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	if _, err := workbook.Sheet("DEP"); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}
