package models

// Stats counts the units visited and skipped during one scan. Skips come
// from the local-recovery policy: a sheet or cell that cannot be read is
// counted here and the scan continues.
type Stats struct {
	// SheetsScanned is the number of sheets visited.
	SheetsScanned int `json:"sheets_scanned"`
	// CellsScanned is the number of text cells examined.
	CellsScanned int `json:"cells_scanned"`
	// SkippedSheets is the number of sheets that failed to read.
	SkippedSheets int `json:"skipped_sheets"`
	// SkippedCells is the number of cells that failed to read.
	SkippedCells int `json:"skipped_cells"`
}

// ScanResult is the outcome of scanning one workbook.
type ScanResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Findings holds one entry per distinct problematic character per
	// cell, in sheet order then row-major cell order.
	Findings []Finding `json:"findings"`
	// Stats describes scan coverage and skips.
	Stats Stats `json:"stats"`
}
