package charscan

import (
	"context"

	"charscan/pkg/charscan/clean"
	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/scanner"
	"charscan/pkg/charscan/workbook"
)

// Scan opens the workbook at path and scans every cell for problematic
// characters.
func Scan(path string, opts Options) (models.ScanResult, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return models.ScanResult{}, err
	}
	defer wb.Close()

	return ScanWorkbook(wb, opts), nil
}

// ScanWorkbook scans an already-open workbook. The workbook is not
// mutated.
func ScanWorkbook(wb *workbook.Workbook, opts Options) models.ScanResult {
	return scanner.New(opts.TargetChars, opts.Logger).Scan(wb)
}

// Clean resolves each finding through the decision source and applies the
// resulting edits to the live workbook. The returned log holds one entry
// per (cell, character) pair actually changed and is valid even when an
// error is returned.
func Clean(ctx context.Context, wb *workbook.Workbook, findings []models.Finding, source clean.DecisionSource, opts Options) ([]models.CleaningLogEntry, error) {
	engine := clean.NewEngine(wb, scanner.New(opts.TargetChars, opts.Logger), source, opts.Logger)
	return engine.Run(ctx, findings)
}
