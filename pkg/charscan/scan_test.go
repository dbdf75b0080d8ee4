package charscan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"charscan/pkg/charscan/clean"
	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/workbook"
)

func writeTestBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "C1", "Customer Name"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "C4", "John Doe"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func TestScan(t *testing.T) {
	path := writeTestBook(t)

	result, err := Scan(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.BookName != "book.xlsx" {
		t.Errorf("BookName = %q, expected book.xlsx", result.BookName)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(result.Findings))
	}
	f := result.Findings[0]
	if f.Char != 0x81 || f.Row != 4 || f.Col != 3 || f.ColumnHeader != "Customer Name" {
		t.Errorf("Unexpected finding: %+v", f)
	}
}

func TestScanMissingFile(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultOptions())
	if !errors.Is(err, workbook.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestScanThenClean(t *testing.T) {
	path := writeTestBook(t)

	wb, err := workbook.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	opts := DefaultOptions()
	result := ScanWorkbook(wb, opts)
	if len(result.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(result.Findings))
	}

	directive, err := clean.NewDirective(models.CleaningDecision{
		Scope:     models.ScopeAllEverywhere,
		Operation: models.OpDelete,
	})
	if err != nil {
		t.Fatalf("NewDirective failed: %v", err)
	}

	entries, err := Clean(context.Background(), wb, result.Findings, directive, opts)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	value, err := wb.CellValue("Sheet1", 4, 3)
	if err != nil {
		t.Fatalf("CellValue failed: %v", err)
	}
	if value != "John Doe" {
		t.Errorf("Cleaned value = %q, expected 'John Doe'", value)
	}

	// Re-scanning the mutated workbook yields no findings.
	if after := ScanWorkbook(wb, opts); len(after.Findings) != 0 {
		t.Errorf("Expected no findings after cleaning, got %d", len(after.Findings))
	}
}
