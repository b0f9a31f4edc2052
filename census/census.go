package census

// MetricPair is the pair of indicators published for every size class and total.
type MetricPair struct {
	Holdings int64   `json:"nb_exploitations"`
	Area     float64 `json:"sau"`
}

// Breakdown maps a canonical size-class label to its metrics.
type Breakdown map[string]MetricPair

// National is the country-wide size-class breakdown.
type National struct {
	Total   *MetricPair `json:"total,omitempty"`
	ByClass Breakdown   `json:"by_class"`
}

type Region struct {
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	ByClass Breakdown   `json:"by_class"`
	Total   *MetricPair `json:"total,omitempty"`
}

// Department carries the name of its region because the DEP sheet only labels
// departments by code.
type Department struct {
	Code       string      `json:"code"`
	RegionName string      `json:"region_name"`
	ByClass    Breakdown   `json:"by_class"`
	Total      *MetricPair `json:"total,omitempty"`
}

// YearSeries maps a year ("2016") to a utilized agricultural area in hectares.
type YearSeries map[string]float64

type DepartmentSeries struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	SauByYear YearSeries `json:"sau_by_year"`
}

type Indicators struct {
	Holdings string `json:"nb_exploitations"`
	Area     string `json:"sau"`
}

type ClassMetadata struct {
	Source      string     `json:"source"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	SauClasses  []string   `json:"sau_classes"`
	Indicators  Indicators `json:"indicators"`
}

// ClassDataset is the serialization root of the size-class converter.
type ClassDataset struct {
	Metadata    ClassMetadata `json:"metadata"`
	National    National      `json:"national"`
	Regions     []Region      `json:"regions"`
	Departments []Department  `json:"departments"`
}

type SeriesMetadata struct {
	Source      string `json:"source"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Years       []int  `json:"years"`
	Unit        string `json:"unit"`
	Note        string `json:"note"`
}

type NationalSeries struct {
	SauByYear YearSeries `json:"sau_by_year"`
}

// SeriesDataset is the serialization root of the departmental time-series converter.
type SeriesDataset struct {
	Metadata    SeriesMetadata     `json:"metadata"`
	National    NationalSeries     `json:"national"`
	Departments []DepartmentSeries `json:"departments"`
}
