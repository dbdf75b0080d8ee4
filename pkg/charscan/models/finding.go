// Package models defines data structures for character scanning and cleaning.
package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Finding represents one problematic character found in one cell, with all
// of its occurrence positions aggregated into a single record.
type Finding struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// Row is the cell row (1-based).
	Row int `json:"row"`
	// Col is the cell column (1-based).
	Col int `json:"col"`
	// ColumnHeader is the first-row value of the same column, if any.
	ColumnHeader string `json:"column_header,omitempty"`
	// Char is the offending character.
	Char rune `json:"char"`
	// Category is the classification label (printable or non-printable
	// with the Unicode general category and character name).
	Category string `json:"category"`
	// Positions holds the rune offsets (0-based) of every occurrence of
	// Char within CellValue, strictly increasing.
	Positions []int `json:"positions"`
	// CellValue is the full cell string at scan time.
	CellValue string `json:"cell_value"`
	// Context is a two-line excerpt around the first occurrence with a
	// caret marking the character. Presentational only.
	Context string `json:"context,omitempty"`
}

// CellRef returns the A1-style cell reference, e.g. "C4".
func (f Finding) CellRef() string {
	name, err := excelize.CoordinatesToCellName(f.Col, f.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", f.Row, f.Col)
	}
	return name
}

// HexCode returns the character's codepoint in 0x-prefixed hex, e.g. "0x81".
func (f Finding) HexCode() string {
	return fmt.Sprintf("0x%02x", f.Char)
}
