package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sauconv/census"
)

var ErrWrite = errors.New("write output")

// Dataset is a serialization root. JSON writers encode it as is; tabular
// writers use its flattened tables.
type Dataset interface {
	Tables() []census.Table
}

type Writer interface {
	Write(path string, dataset Dataset) error
}

type Options struct {
	Indent int
}

func SupportedFormats() []string {
	return []string{"json", "csv", "excel", "sqlite"}
}

func WriterForFormat(format string, options Options) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "json":
		return &JSONWriter{Indent: options.Indent}, nil
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "sqlite", "db":
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: %s)", format, strings.Join(SupportedFormats(), ", "))
	}
}

// DetectFormat infers the output format from the file extension, defaulting to json.
func DetectFormat(path string) string {
	if format, ok := FormatFromExtension(path); ok {
		return format
	}
	return "json"
}

// FormatFromExtension reports the format implied by the extension of path,
// if the extension is one the writers know.
func FormatFromExtension(path string) (string, bool) {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "json":
		return "json", true
	case "csv":
		return "csv", true
	case "xlsx", "xlsm":
		return "excel", true
	case "db", "sqlite", "sqlite3":
		return "sqlite", true
	default:
		return "", false
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
