package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"

	"sauconv/census"
	"sauconv/storage"
)

func sampleDataset() census.ClassDataset {
	return census.ClassDataset{
		Metadata: census.ClassMetadata{
			Source:      "Agreste - Recensement Agricole 2020",
			Description: "Nombre d'exploitations agricoles et SAU selon classe de SAU",
			URL:         "https://agreste.agriculture.gouv.fr/",
			SauClasses:  []string{"[0,20)", "[20,50)", "[50,100)", "[100,200)", "[200+)"},
			Indicators:  census.Indicators{Holdings: "Nombre d'exploitations", Area: "Superficie Agricole Utilisée (hectares)"},
		},
		National: census.National{
			Total:   &census.MetricPair{Holdings: 416054, Area: 26745312.49},
			ByClass: census.Breakdown{"[0,20)": {Holdings: 160000, Area: 1200000.12}},
		},
		Regions: []census.Region{
			{Code: "11", Name: "Île-de-France", ByClass: census.Breakdown{"[200+)": {Holdings: 900, Area: 300000}}},
		},
		Departments: []census.Department{
			{Code: "2A", RegionName: "Corse", ByClass: census.Breakdown{}, Total: &census.MetricPair{Holdings: 1500, Area: 60000.5}},
		},
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", "json", "CSV", "excel", "xlsx", "sqlite"} {
		_, err := WriterForFormat(format, Options{})
		require.NoError(t, err, "format %q", format)
	}
	_, err := WriterForFormat("parquet", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported: json, csv, excel, sqlite")
}

func TestFormatFromExtension(t *testing.T) {
	t.Parallel()

	format, ok := FormatFromExtension("out/ra2020.XLSX")
	assert.True(t, ok)
	assert.Equal(t, "excel", format)

	format, ok = FormatFromExtension("out/ra2020.json")
	assert.True(t, ok)
	assert.Equal(t, "json", format)

	for _, path := range []string{"ra2020", "sau.output", "sau.parquet"} {
		_, ok := FormatFromExtension(path)
		assert.False(t, ok, "path %q", path)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ra2020.json":        "json",
		"out/ra2020.CSV":     "csv",
		"ra2020.xlsx":        "excel",
		"ra2020.db":          "sqlite",
		"ra2020.sqlite":      "sqlite",
		"ra2020":             "json",
		"sau_by_year.output": "json",
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), "path %q", path)
	}
}

func TestJSONWriter_WritesRootShapeWithLiteralUnicode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ra2020.json")
	require.NoError(t, (&JSONWriter{}).Write(path, sampleDataset()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.True(t, gjson.Valid(text))
	assert.Contains(t, text, "Île-de-France")
	assert.Contains(t, text, "Superficie Agricole Utilisée")
	assert.True(t, strings.HasPrefix(text, "{\n  \"metadata\": {"))
	assert.True(t, strings.HasSuffix(text, "}\n"))

	assert.Equal(t, int64(416054), gjson.Get(text, "national.total.nb_exploitations").Int())
	assert.Equal(t, 26745312.49, gjson.Get(text, "national.total.sau").Float())
	assert.Equal(t, "[200+)", gjson.Get(text, "metadata.sau_classes.4").String())
	assert.Equal(t, "11", gjson.Get(text, "regions.0.code").String())
	assert.False(t, gjson.Get(text, "regions.0.total").Exists())
	assert.Equal(t, "Corse", gjson.Get(text, "departments.0.region_name").String())
	assert.Equal(t, 60000.5, gjson.Get(text, "departments.0.total.sau").Float())
}

func TestJSONWriter_IsByteIdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, (&JSONWriter{}).Write(first, sampleDataset()))
	require.NoError(t, (&JSONWriter{}).Write(second, sampleDataset()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestJSONWriter_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ra2020.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 1<<16)), 0o644))
	require.NoError(t, (&JSONWriter{Indent: 4}).Write(path, sampleDataset()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(content))
	assert.True(t, strings.HasPrefix(string(content), "{\n    \"metadata\""))
}

func TestWriters_FailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "ra2020.json")
	err := (&JSONWriter{}).Write(path, sampleDataset())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSyncAndClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	file, err := os.Create(path)
	require.NoError(t, err)
	_, err = file.WriteString("{}\n")
	require.NoError(t, err)

	require.NoError(t, syncAndClose(file))
	assert.Error(t, file.Close(), "file should already be closed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))

	assert.Error(t, syncAndClose(file), "syncing a closed file must fail")
}

func TestWriteAtomic_RemovesTempFileOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	boom := errors.New("boom")

	err := writeAtomic(path, func(tmpPath string) error {
		require.NoError(t, os.WriteFile(tmpPath, []byte("partial"), 0o644))
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
	assert.True(t, errors.Is(err, boom))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestCSVWriter_WritesOneRowPerMetric(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ra2020.csv")
	require.NoError(t, (&CSVWriter{}).Write(path, sampleDataset()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"level", "code", "name", "key", "nb_exploitations", "sau"}, records[0])
	assert.Equal(t, []string{"national", "FR", "France", "[0,20)", "160000", "1200000.12"}, records[1])
	assert.Equal(t, []string{"national", "FR", "France", "Total", "416054", "26745312.49"}, records[2])
	assert.Equal(t, []string{"departments", "2A", "Corse", "Total", "1500", "60000.5"}, records[4])
}

func TestCSVWriter_SeriesLeavesHoldingsEmpty(t *testing.T) {
	t.Parallel()

	dataset := census.SeriesDataset{
		National:    census.NationalSeries{SauByYear: census.YearSeries{"2016": 10}},
		Departments: []census.DepartmentSeries{{Code: "971", Name: "Guadeloupe", SauByYear: census.YearSeries{"2016": 10}}},
	}
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, (&CSVWriter{}).Write(path, dataset))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "departments,971,Guadeloupe,2016,,10\n")
}

func TestExcelWriter_WritesSheetPerTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ra2020.xlsx")
	require.NoError(t, (&ExcelWriter{}).Write(path, sampleDataset()))

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"national", "regions", "departments"}, file.GetSheetList())
	rows, err := file.GetRows("regions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"11", "Île-de-France", "[200+)", "900", "300000"}, rows[1])
}

func TestSQLiteWriter_StoresTables(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ra2020.db")
	require.NoError(t, (&SQLiteWriter{}).Write(path, sampleDataset()))

	store, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	rows, err := store.ListTable("national")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1].Key)
	require.NotNil(t, rows[1].Holdings)
	assert.Equal(t, int64(416054), *rows[1].Holdings)
}
