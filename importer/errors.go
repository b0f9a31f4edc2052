package importer

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound = errors.New("source file not found")
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrColumnNotFound = errors.New("column not found")
)

// RowError ties a failure to the sheet row that caused it.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("sheet %q row %d: %v", e.Sheet, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
