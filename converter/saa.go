package converter

import (
	"context"
	"fmt"

	"sauconv/aggregate"
	"sauconv/census"
	"sauconv/importer"
)

const (
	sheetTerritory      = "TER"
	columnCategory      = "LIB_SAA"
	categoryUtilizedSAU = "28 - SURFACE AGRICOLE UTILISÉE DES EXPLOITATIONS (21 + 26 + 27)"
	saaDefaultOutput    = "sau_by_department_year.json"
)

// SeriesConverter converts the SAA departmental workbook into per-year series.
type SeriesConverter struct {
	years  []int
	layout importer.Layout
}

func NewSeriesConverter(options Options) (*SeriesConverter, error) {
	first, last := options.FirstYear, options.LastYear
	if first == 0 && last == 0 {
		first, last = DefaultFirstYear, DefaultLastYear
	}
	if first <= 0 || last < first {
		return nil, fmt.Errorf("invalid year range %d-%d", first, last)
	}

	years := make([]int, 0, last-first+1)
	required := []string{aggregate.ColumnDepartment}
	for year := first; year <= last; year++ {
		years = append(years, year)
		required = append(required, aggregate.YearColumn(year))
	}

	return &SeriesConverter{
		years: years,
		// Rows 0-4 hold the publication banner; row 5 names the columns.
		layout: importer.Layout{
			Name:      "department_series",
			Sheet:     sheetTerritory,
			HeaderRow: 5,
			DataStart: 6,
			Required:  required,
			Filter:    &importer.Filter{Column: columnCategory, Equals: categoryUtilizedSAU},
		},
	}, nil
}

func (c *SeriesConverter) Name() string {
	return "saa"
}

func (c *SeriesConverter) Description() string {
	return "Statistique Agricole Annuelle: utilized agricultural area by department and year"
}

func (c *SeriesConverter) DefaultOutput() string {
	return saaDefaultOutput
}

func (c *SeriesConverter) Sheets() []string {
	return []string{c.layout.Sheet}
}

func (c *SeriesConverter) Years() []int {
	return append([]int(nil), c.years...)
}

func (c *SeriesConverter) Convert(ctx context.Context, path string) (*Result, error) {
	workbook, err := importer.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	records, err := locate(ctx, workbook, c.layout)
	if err != nil {
		return nil, err
	}

	departments, national, err := aggregate.Series(records, c.years)
	if err != nil {
		return nil, err
	}

	first, last := c.years[0], c.years[len(c.years)-1]
	dataset := census.SeriesDataset{
		Metadata: census.SeriesMetadata{
			Source:      "Agreste - Statistique Agricole Annuelle (SAA) 2010-2024",
			Description: fmt.Sprintf("Surface Agricole Utilisée (SAU) des exploitations par département, de %d à %d", first, last),
			URL:         agresteURL,
			Years:       c.Years(),
			Unit:        "hectares",
			Note:        "Départements métropolitains et DOM",
		},
		National:    census.NationalSeries{SauByYear: national},
		Departments: departments,
	}

	return &Result{Dataset: dataset, Summary: summarizeSeries(c.Name(), dataset, last)}, nil
}
