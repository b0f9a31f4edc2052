package converter

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"sauconv/census"
)

// Summary is the human-readable outcome of a conversion.
type Summary struct {
	Converter        string
	Counts           []Count
	NationalHoldings *int64
	Area             AreaStats
}

type Count struct {
	Label string
	Value int
}

// AreaStats describes the spread of one area indicator across departments.
type AreaStats struct {
	Label  string
	N      int
	Sum    float64
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

func summarizeClasses(name string, dataset census.ClassDataset) Summary {
	summary := Summary{
		Converter: name,
		Counts: []Count{
			{Label: "Regions", Value: len(dataset.Regions)},
			{Label: "Departments", Value: len(dataset.Departments)},
		},
	}
	if dataset.National.Total != nil {
		holdings := dataset.National.Total.Holdings
		summary.NationalHoldings = &holdings
	}

	areas := make([]float64, 0, len(dataset.Departments))
	for _, department := range dataset.Departments {
		if department.Total != nil {
			areas = append(areas, department.Total.Area)
		}
	}
	summary.Area = describe("Department total SAU (ha)", areas)
	return summary
}

func summarizeSeries(name string, dataset census.SeriesDataset, year int) Summary {
	key := strconv.Itoa(year)
	areas := make([]float64, 0, len(dataset.Departments))
	for _, department := range dataset.Departments {
		if area, ok := department.SauByYear[key]; ok {
			areas = append(areas, area)
		}
	}

	return Summary{
		Converter: name,
		Counts: []Count{
			{Label: "Departments", Value: len(dataset.Departments)},
			{Label: "Years", Value: len(dataset.Metadata.Years)},
		},
		Area: describe("Department SAU "+key+" (ha)", areas),
	}
}

func describe(label string, values []float64) AreaStats {
	out := AreaStats{Label: label, N: len(values)}
	if len(values) == 0 {
		return out
	}

	// The stats helpers only fail on empty input.
	data := stats.Float64Data(values)
	out.Sum, _ = data.Sum()
	out.Mean, _ = data.Mean()
	out.Median, _ = data.Median()
	out.Min, _ = data.Min()
	out.Max, _ = data.Max()
	return out
}
