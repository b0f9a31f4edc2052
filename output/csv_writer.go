package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// CSVWriter writes every table into one file, tagging rows with their level.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, dataset Dataset) error {
	return writeAtomic(path, func(tmpPath string) error {
		file, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("create csv output: %w", err)
		}

		writer := csv.NewWriter(file)

		headers := append([]string{"level"}, censusColumns()...)
		if err := writer.Write(headers); err != nil {
			_ = file.Close()
			return fmt.Errorf("write csv headers: %w", err)
		}

		for _, table := range dataset.Tables() {
			for _, row := range table.Rows {
				holdings := ""
				if row.Holdings != nil {
					holdings = strconv.FormatInt(*row.Holdings, 10)
				}
				record := []string{
					table.Name,
					row.Code,
					row.Name,
					row.Key,
					holdings,
					strconv.FormatFloat(row.Area, 'f', -1, 64),
				}
				if err := writer.Write(record); err != nil {
					_ = file.Close()
					return fmt.Errorf("write csv row: %w", err)
				}
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			_ = file.Close()
			return fmt.Errorf("flush csv output: %w", err)
		}

		return syncAndClose(file)
	})
}
