package scanner

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"charscan/pkg/charscan/classify"
	"charscan/pkg/charscan/workbook"
)

// buildWorkbook writes cells to a temp xlsx and opens it for scanning.
// cells maps A1-style references to values, all on Sheet1.
func buildWorkbook(t *testing.T, cells map[string]interface{}) *workbook.Workbook {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for ref, value := range cells {
		if err := f.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", ref, err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := workbook.Open(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestScanCustomerNameScenario(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "ID",
		"B1": "Date",
		"C1": "Customer Name",
		"C4": "John Doe's Café",
	})

	s := New(nil, nil)
	result := s.Scan(wb)

	// Café contributes é (0xE9, in the default range) and the stray 0x81.
	if len(result.Findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d: %+v", len(result.Findings), result.Findings)
	}

	f := result.Findings[1]
	if f.Char != 0x81 {
		t.Errorf("Expected char 0x81, got %#U", f.Char)
	}
	if f.Sheet != "Sheet1" || f.Row != 4 || f.Col != 3 {
		t.Errorf("Expected Sheet1 row 4 col 3, got %s row %d col %d", f.Sheet, f.Row, f.Col)
	}
	if f.ColumnHeader != "Customer Name" {
		t.Errorf("Expected column header 'Customer Name', got %q", f.ColumnHeader)
	}
	if !reflect.DeepEqual(f.Positions, []int{15}) {
		t.Errorf("Expected positions [15], got %v", f.Positions)
	}
	if !strings.HasPrefix(f.Category, "Non-printable") {
		t.Errorf("Expected Non-printable category, got %q", f.Category)
	}
	if f.CellValue != "John Doe's Café" {
		t.Errorf("Unexpected cell value snapshot: %q", f.CellValue)
	}

	// First-occurrence order: é appears at offset 14, before the 0x81.
	if result.Findings[0].Char != 0xE9 {
		t.Errorf("Expected first finding to be é, got %#U", result.Findings[0].Char)
	}
	if result.Findings[0].Category != "Printable" {
		t.Errorf("Expected é to be Printable, got %q", result.Findings[0].Category)
	}
}

func TestScanCleanCells(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "plain ascii text",
		"B2": "more text, still clean",
		"C3": 1234,
		"D4": 56.78,
	})

	result := New(nil, nil).Scan(wb)
	if len(result.Findings) != 0 {
		t.Errorf("Expected no findings for clean cells, got %d", len(result.Findings))
	}
	// Numeric cells are not text and must not count as scanned.
	if result.Stats.CellsScanned != 2 {
		t.Errorf("Expected 2 text cells scanned, got %d", result.Stats.CellsScanned)
	}
}

func TestScanAggregatesOccurrences(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "abc",
	})

	result := New(nil, nil).Scan(wb)
	if len(result.Findings) != 2 {
		t.Fatalf("Expected 2 findings (one per distinct char), got %d", len(result.Findings))
	}

	first := result.Findings[0]
	if first.Char != 0x81 {
		t.Errorf("Expected first finding for 0x81, got %#U", first.Char)
	}
	if !reflect.DeepEqual(first.Positions, []int{1, 3}) {
		t.Errorf("Expected positions [1 3], got %v", first.Positions)
	}
	if result.Findings[1].Char != 0x82 {
		t.Errorf("Expected second finding for 0x82, got %#U", result.Findings[1].Char)
	}

	// Positions must be strictly increasing and index the character.
	for _, f := range result.Findings {
		runes := []rune(f.CellValue)
		prev := -1
		for _, p := range f.Positions {
			if p <= prev {
				t.Errorf("Positions not strictly increasing: %v", f.Positions)
			}
			prev = p
			if runes[p] != f.Char {
				t.Errorf("Position %d indexes %#U, expected %#U", p, runes[p], f.Char)
			}
		}
	}
}

func TestScanTargetSet(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "value with  only",
	})

	// Restricting the scan to 0x82 must not report the 0x81.
	result := New(classify.NewSet(0x82), nil).Scan(wb)
	if len(result.Findings) != 0 {
		t.Errorf("Expected no findings when targeting 0x82, got %d", len(result.Findings))
	}

	result = New(classify.NewSet(0x81), nil).Scan(wb)
	if len(result.Findings) != 1 {
		t.Errorf("Expected one finding when targeting 0x81, got %d", len(result.Findings))
	}
}

func TestScanIdempotent(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "Header",
		"A2": "badvalue",
		"B2": "anotherone",
	})

	s := New(nil, nil)
	first := s.Scan(wb)
	second := s.Scan(wb)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Scan is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScanHeaderRowHasNoHeader(t *testing.T) {
	wb := buildWorkbook(t, map[string]interface{}{
		"A1": "header",
	})

	result := New(nil, nil).Scan(wb)
	if len(result.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(result.Findings))
	}
	if result.Findings[0].ColumnHeader != "" {
		t.Errorf("Row 1 findings must not self-reference a header, got %q", result.Findings[0].ColumnHeader)
	}
}
