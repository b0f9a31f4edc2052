package census

import (
	"sort"
	"strconv"
)

// NationalCode and NationalName label the country-wide rows of flattened tables.
const (
	NationalCode = "FR"
	NationalName = "France"
	totalKey     = "Total"
)

// TableColumns is the column layout shared by every flattened table.
var TableColumns = []string{"code", "name", "key", "nb_exploitations", "sau"}

// Row is one metric of a flattened dataset. Key is a size class or a year;
// Holdings is nil for area-only series.
type Row struct {
	Code     string
	Name     string
	Key      string
	Holdings *int64
	Area     float64
}

func (r Row) Values() []any {
	var holdings any
	if r.Holdings != nil {
		holdings = *r.Holdings
	}
	return []any{r.Code, r.Name, r.Key, holdings, r.Area}
}

// Table is one geographic level of a flattened dataset.
type Table struct {
	Name string
	Rows []Row
}

func (d ClassDataset) Tables() []Table {
	national := Table{Name: "national", Rows: breakdownRows(NationalCode, NationalName, d.National.ByClass, d.National.Total, d.Metadata.SauClasses)}

	regions := Table{Name: "regions"}
	for _, region := range d.Regions {
		regions.Rows = append(regions.Rows, breakdownRows(region.Code, region.Name, region.ByClass, region.Total, d.Metadata.SauClasses)...)
	}

	departments := Table{Name: "departments"}
	for _, department := range d.Departments {
		departments.Rows = append(departments.Rows, breakdownRows(department.Code, department.RegionName, department.ByClass, department.Total, d.Metadata.SauClasses)...)
	}

	return []Table{national, regions, departments}
}

func (d SeriesDataset) Tables() []Table {
	national := Table{Name: "national", Rows: seriesRows(NationalCode, NationalName, d.National.SauByYear)}

	departments := Table{Name: "departments"}
	for _, department := range d.Departments {
		departments.Rows = append(departments.Rows, seriesRows(department.Code, department.Name, department.SauByYear)...)
	}

	return []Table{national, departments}
}

// breakdownRows emits known classes in bracket order, then unknown ones
// alphabetically, then the total.
func breakdownRows(code, name string, byClass Breakdown, total *MetricPair, order []string) []Row {
	rank := make(map[string]int, len(order))
	for i, class := range order {
		rank[class] = i
	}

	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		ri, knownI := rank[classes[i]]
		rj, knownJ := rank[classes[j]]
		switch {
		case knownI && knownJ:
			return ri < rj
		case knownI != knownJ:
			return knownI
		default:
			return classes[i] < classes[j]
		}
	})

	rows := make([]Row, 0, len(classes)+1)
	for _, class := range classes {
		rows = append(rows, metricRow(code, name, class, byClass[class]))
	}
	if total != nil {
		rows = append(rows, metricRow(code, name, totalKey, *total))
	}
	return rows
}

func metricRow(code, name, key string, pair MetricPair) Row {
	holdings := pair.Holdings
	return Row{Code: code, Name: name, Key: key, Holdings: &holdings, Area: pair.Area}
}

func seriesRows(code, name string, series YearSeries) []Row {
	years := make([]int, 0, len(series))
	for year := range series {
		value, err := strconv.Atoi(year)
		if err != nil {
			continue
		}
		years = append(years, value)
	}
	sort.Ints(years)

	rows := make([]Row, 0, len(years))
	for _, year := range years {
		key := strconv.Itoa(year)
		rows = append(rows, Row{Code: code, Name: name, Key: key, Area: series[key]})
	}
	return rows
}
