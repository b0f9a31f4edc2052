package output

import (
	"fmt"

	"sauconv/census"
	"sauconv/storage"
)

// SQLiteWriter stores each table of the dataset in a fresh SQLite file.
type SQLiteWriter struct{}

func (w *SQLiteWriter) Write(path string, dataset Dataset) error {
	return writeAtomic(path, func(tmpPath string) error {
		store, err := storage.OpenSQLite(tmpPath)
		if err != nil {
			return err
		}

		for _, table := range dataset.Tables() {
			if _, err := store.InsertTable(table); err != nil {
				_ = store.Close()
				return fmt.Errorf("store %s: %w", table.Name, err)
			}
		}

		return store.Close()
	})
}

func censusColumns() []string {
	return append([]string(nil), census.TableColumns...)
}
