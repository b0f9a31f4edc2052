package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const defaultIndent = 2

// JSONWriter emits the dataset as indented UTF-8 JSON. Non-ASCII text is kept
// literal and map keys are sorted, so equal datasets give identical bytes.
type JSONWriter struct {
	Indent int
}

func (w *JSONWriter) Write(path string, dataset Dataset) error {
	indent := w.Indent
	if indent <= 0 {
		indent = defaultIndent
	}

	return writeAtomic(path, func(tmpPath string) error {
		file, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("create json output: %w", err)
		}

		encoder := json.NewEncoder(file)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", strings.Repeat(" ", indent))
		if err := encoder.Encode(dataset); err != nil {
			_ = file.Close()
			return fmt.Errorf("encode json output: %w", err)
		}

		return syncAndClose(file)
	})
}
