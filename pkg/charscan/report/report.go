// Package report turns findings into a console rendering and a tabular
// record set. It performs no I/O.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"charscan/pkg/charscan/models"
)

const separator = "--------------------------------------------------------------------------------"

// Header is the column set for the tabular rows, one row per finding.
var Header = []string{
	"sheet", "row", "col", "cell", "column_header",
	"char_hex", "category", "positions", "cell_value",
}

// Build renders findings as console text and as tabular rows ready for CSV
// serialization. Zero findings produce an explicit no-findings message and
// a header-only table.
func Build(result models.ScanResult) (string, [][]string) {
	rows := make([][]string, 0, len(result.Findings)+1)
	rows = append(rows, Header)

	if len(result.Findings) == 0 {
		text := fmt.Sprintf("No problematic characters found in %q.\n", result.BookName)
		return text, rows
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d instances of problematic characters:\n", len(result.Findings))
	b.WriteString(separator + "\n")

	for _, f := range result.Findings {
		writeFinding(&b, f)
		rows = append(rows, tabularRow(f))
	}

	if result.Stats.SkippedSheets > 0 || result.Stats.SkippedCells > 0 {
		fmt.Fprintf(&b, "Skipped during scan: %d sheets, %d cells (unreadable).\n",
			result.Stats.SkippedSheets, result.Stats.SkippedCells)
	}
	return b.String(), rows
}

func writeFinding(b *strings.Builder, f models.Finding) {
	fmt.Fprintf(b, "Sheet: %s\n", f.Sheet)
	if f.ColumnHeader != "" {
		fmt.Fprintf(b, "Location: Cell %s (Column Header: %s)\n", f.CellRef(), f.ColumnHeader)
	} else {
		fmt.Fprintf(b, "Location: Cell %s\n", f.CellRef())
	}
	fmt.Fprintf(b, "Problematic Character: %s\n", f.HexCode())
	if f.Category == "Printable" {
		fmt.Fprintf(b, "Character: %q - %s\n", f.Char, f.Category)
	} else {
		fmt.Fprintf(b, "Character: %s\n", f.Category)
	}
	fmt.Fprintf(b, "Character Position(s) in Cell: %s\n", positionList(f.Positions))
	fmt.Fprintf(b, "Cell Value: %s\n", f.CellValue)
	for _, pos := range f.Positions {
		excerpt, caret := models.ContextLines(f.CellValue, pos)
		fmt.Fprintf(b, "Context: %s\n", excerpt)
		fmt.Fprintf(b, "         %s\n", caret)
	}
	b.WriteString(separator + "\n")
}

func tabularRow(f models.Finding) []string {
	return []string{
		f.Sheet,
		strconv.Itoa(f.Row),
		strconv.Itoa(f.Col),
		f.CellRef(),
		f.ColumnHeader,
		f.HexCode(),
		f.Category,
		positionList(f.Positions),
		f.CellValue,
	}
}

func positionList(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
