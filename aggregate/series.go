package aggregate

import (
	"fmt"
	"strconv"

	"sauconv/census"
	"sauconv/importer"
	"sauconv/internal/label"
	"sauconv/internal/numeric"
)

// ColumnDepartment holds the composite "code - name" department label.
const ColumnDepartment = "LIB_DEP"

// YearColumn names the area column of a year in the SAA sheets.
func YearColumn(year int) string {
	return fmt.Sprintf("SURF_%d", year)
}

// Series builds one area time series per department and the national series
// as the sum of the rounded departmental values. Departments without any
// numeric year are omitted; every requested year appears nationally.
func Series(records []importer.Record, years []int) ([]census.DepartmentSeries, census.YearSeries, error) {
	departments := newOrderedMap[census.DepartmentSeries]()
	for _, record := range records {
		code, name, err := label.GeoLabel(record.Get(ColumnDepartment))
		if err != nil {
			return nil, nil, &importer.RowError{Sheet: record.Sheet, Row: record.RowNumber, Err: err}
		}

		values := census.YearSeries{}
		for _, year := range years {
			area, ok := numeric.Parse(record.Get(YearColumn(year)))
			if !ok {
				continue
			}
			values[strconv.Itoa(year)] = numeric.Round2(area)
		}
		if len(values) == 0 {
			continue
		}

		department := departments.getOrCreate(code, func() *census.DepartmentSeries {
			return &census.DepartmentSeries{Code: code, Name: name, SauByYear: census.YearSeries{}}
		})
		for year, area := range values {
			department.SauByYear[year] = area
		}
	}

	list := departments.list()
	national := make(census.YearSeries, len(years))
	for _, year := range years {
		national[strconv.Itoa(year)] = 0
	}
	for _, department := range list {
		for year, area := range department.SauByYear {
			national[year] += area
		}
	}
	for year, total := range national {
		national[year] = numeric.Round2(total)
	}

	return list, national, nil
}
