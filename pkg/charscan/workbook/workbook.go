// Package workbook wraps excelize with the cell-level access the scanner
// and cleaning engine need.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet document, exclusively owned by the
// current run.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string { return w.path }

// BookName returns the workbook file name without its directory.
func (w *Workbook) BookName() string { return filepath.Base(w.path) }

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Rows returns all cell values of a sheet as formatted strings, row-major.
// Trailing empty cells within a row are omitted, matching excelize.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.f.GetRows(sheet)
}

// CellValue returns the formatted value of the cell at 1-based (row, col).
func (w *Workbook) CellValue(sheet string, row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return w.f.GetCellValue(sheet, name)
}

// SetCellValue writes a string value to the cell at 1-based (row, col).
func (w *Workbook) SetCellValue(sheet string, row, col int, value string) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.f.SetCellValue(sheet, name, value)
}

// Save writes the workbook to path. Failures are reported as WriteErrors
// so callers can preserve in-memory state instead of crashing.
func (w *Workbook) Save(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
