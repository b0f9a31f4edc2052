package output

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes one sheet per table.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, dataset Dataset) error {
	return writeAtomic(path, func(tmpPath string) error {
		file := excelize.NewFile()
		defer file.Close()

		headers := censusColumns()
		for i, table := range dataset.Tables() {
			sheet := table.Name
			if i == 0 {
				if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
					return fmt.Errorf("rename excel sheet %s: %w", sheet, err)
				}
			} else if _, err := file.NewSheet(sheet); err != nil {
				return fmt.Errorf("create excel sheet %s: %w", sheet, err)
			}

			for col, header := range headers {
				cell, _ := excelize.CoordinatesToCellName(col+1, 1)
				if err := file.SetCellValue(sheet, cell, header); err != nil {
					return fmt.Errorf("set excel header %s: %w", cell, err)
				}
			}

			for r, row := range table.Rows {
				for col, value := range row.Values() {
					if value == nil {
						continue
					}
					cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
					if err := file.SetCellValue(sheet, cell, value); err != nil {
						return fmt.Errorf("set excel value %s: %w", cell, err)
					}
				}
			}
		}

		out, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("create excel output: %w", err)
		}
		if err := file.Write(out); err != nil {
			_ = out.Close()
			return fmt.Errorf("save excel output: %w", err)
		}
		return syncAndClose(out)
	})
}
