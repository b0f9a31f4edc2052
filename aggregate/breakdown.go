package aggregate

import (
	"sauconv/census"
	"sauconv/importer"
	"sauconv/internal/label"
	"sauconv/internal/numeric"
)

// Column names assigned by the size-class layouts.
const (
	ColumnClass    = "classe_sau"
	ColumnHoldings = "nb_exploitations"
	ColumnArea     = "sau"
)

// KeyFunc derives the geographic identity of a record: its code and the
// display name stored on first occurrence.
type KeyFunc func(record importer.Record) (code string, name string, err error)

// Entity is one geographic unit with its size-class breakdown.
type Entity struct {
	Code    string
	Name    string
	Total   *census.MetricPair
	ByClass census.Breakdown
}

// Breakdown groups size-class rows by geography in first-occurrence order.
// Rows lacking a class, a count or an area are skipped.
func Breakdown(records []importer.Record, key KeyFunc) ([]Entity, error) {
	entities := newOrderedMap[Entity]()
	for _, record := range records {
		class, pair, ok := metricOf(record)
		if !ok {
			continue
		}

		code, name, err := key(record)
		if err != nil {
			return nil, &importer.RowError{Sheet: record.Sheet, Row: record.RowNumber, Err: err}
		}

		entity := entities.getOrCreate(code, func() *Entity {
			return &Entity{Code: code, Name: name, ByClass: census.Breakdown{}}
		})
		if class == label.TotalClass {
			total := pair
			entity.Total = &total
		} else {
			entity.ByClass[class] = pair
		}
	}
	return entities.list(), nil
}

// National builds the country-wide breakdown from an ungrouped sheet.
func National(records []importer.Record) census.National {
	national := census.National{ByClass: census.Breakdown{}}
	for _, record := range records {
		class, pair, ok := metricOf(record)
		if !ok {
			continue
		}
		if class == label.TotalClass {
			total := pair
			national.Total = &total
		} else {
			national.ByClass[class] = pair
		}
	}
	return national
}

// CodeColumn keys records by the normalized code found in column.
func CodeColumn(column, nameColumn string) KeyFunc {
	return func(record importer.Record) (string, string, error) {
		return label.GeoCode(record.Get(column)), record.Get(nameColumn), nil
	}
}

func metricOf(record importer.Record) (string, census.MetricPair, bool) {
	class := label.SizeClass(record.Get(ColumnClass))
	if class == "" {
		return "", census.MetricPair{}, false
	}
	holdings, ok := numeric.ParseCount(record.Get(ColumnHoldings))
	if !ok {
		return "", census.MetricPair{}, false
	}
	area, ok := numeric.Parse(record.Get(ColumnArea))
	if !ok {
		return "", census.MetricPair{}, false
	}
	return class, census.MetricPair{Holdings: holdings, Area: numeric.Round2(area)}, true
}
