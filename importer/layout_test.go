package importer

import (
	"errors"
	"testing"
)

func gridOf(rows ...[]string) Grid {
	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for col, value := range row {
			cells[col] = Cell(value)
		}
		grid[i] = cells
	}
	return grid
}

func TestLocate_FixedWindowUsesDeclaredColumns(t *testing.T) {
	t.Parallel()

	grid := gridOf(
		[]string{"Nombre d'exploitations et SAU"},
		[]string{"Classe de SAU", "Nb", "SAU (ha)"},
		[]string{"[0,20 ha)", "1", "2"},
		[]string{"Total", "3", "4"},
		[]string{"notes", "9", "9"},
	)

	records, err := Locate(grid, Layout{
		Name:      "national",
		Sheet:     "FRANCE",
		HeaderRow: 1,
		DataStart: 2,
		DataEnd:   4,
		Columns:   []string{"classe_sau", "nb_exploitations", "sau"},
	})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RowNumber != 3 || records[0].Get("classe_sau") != "[0,20 ha)" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Get("sau") != "4" {
		t.Fatalf("unexpected total area: %q", records[1].Get("sau"))
	}
}

func TestLocate_DropsRowsWithoutKey(t *testing.T) {
	t.Parallel()

	grid := gridOf(
		[]string{"title"},
		[]string{"Code", "Libellé", "Classe", "Nb", "SAU"},
		[]string{"11", "Île-de-France", "Total", "4000", "560000"},
		[]string{},
		[]string{"", "", "Total", "1", "1"},
		[]string{"24", "Centre-Val de Loire"},
	)

	records, err := Locate(grid, Layout{
		Name:      "regions",
		Sheet:     "REGION(avec DOM)",
		HeaderRow: 1,
		DataStart: 2,
		Columns:   []string{"code", "name", "classe_sau", "nb_exploitations", "sau"},
		KeyColumn: "code",
	})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Get("code") != "24" || records[1].Get("sau") != "" {
		t.Fatalf("expected short row to read missing cells: %+v", records[1])
	}
}

func TestLocate_FilterKeepsMatchingCategoryFromHeaderNames(t *testing.T) {
	t.Parallel()

	sau := "28 - SURFACE AGRICOLE UTILISÉE DES EXPLOITATIONS (21 + 26 + 27)"
	grid := gridOf(
		[]string{"Statistique agricole annuelle"},
		[]string{},
		[]string{},
		[]string{},
		[]string{},
		[]string{"LIB_REG2", "LIB_DEP", "LIB_SAA", "SURF_2016"},
		[]string{"11 - Île-de-France", "077 - Seine-et-Marne", "21 - TERRES ARABLES", "1"},
		[]string{"11 - Île-de-France", "077 - Seine-et-Marne", " " + sau + " ", "2"},
		[]string{"11 - Île-de-France", "078 - Yvelines", sau, "3"},
	)

	records, err := Locate(grid, Layout{
		Name:      "department_series",
		Sheet:     "TER",
		HeaderRow: 5,
		DataStart: 6,
		Required:  []string{"LIB_DEP", "SURF_2016"},
		Filter:    &Filter{Column: "LIB_SAA", Equals: sau},
	})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Get("SURF_2016") != "2" || records[1].Get("LIB_DEP") != "078 - Yvelines" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLocate_MissingRequiredColumn(t *testing.T) {
	t.Parallel()

	grid := gridOf([]string{"LIB_DEP", "SURF_2016"}, []string{"077 - Seine-et-Marne", "1"})

	_, err := Locate(grid, Layout{
		Name:      "department_series",
		Sheet:     "TER",
		HeaderRow: 0,
		DataStart: 1,
		Required:  []string{"SURF_2024"},
	})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestLayoutValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{name: "valid", layout: Layout{Name: "n", Sheet: "S", HeaderRow: 1, DataStart: 2}},
		{name: "missing sheet", layout: Layout{Name: "n", HeaderRow: 1, DataStart: 2}, wantErr: true},
		{name: "data before header", layout: Layout{Name: "n", Sheet: "S", HeaderRow: 3, DataStart: 2}, wantErr: true},
		{name: "empty window", layout: Layout{Name: "n", Sheet: "S", HeaderRow: 0, DataStart: 2, DataEnd: 2}, wantErr: true},
		{name: "blank column", layout: Layout{Name: "n", Sheet: "S", HeaderRow: 0, DataStart: 1, Columns: []string{"a", ""}}, wantErr: true},
		{name: "incomplete filter", layout: Layout{Name: "n", Sheet: "S", HeaderRow: 0, DataStart: 1, Filter: &Filter{Column: "x"}}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.layout.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
