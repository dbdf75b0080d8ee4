// Package scanner walks a workbook's cells and reports problematic
// characters as findings.
package scanner

import (
	"strconv"

	"go.uber.org/zap"

	"charscan/pkg/charscan/classify"
	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/workbook"
)

// Scanner finds problematic characters in workbook cells. Scanning never
// mutates the workbook.
type Scanner struct {
	target classify.Set
	logger *zap.Logger
}

// New creates a Scanner. A nil target set scans for the default 0x80-0xFF
// range; a nil logger disables logging.
func New(target classify.Set, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{target: target, logger: logger}
}

// Scan visits every sheet in workbook order and every cell in row-major
// order, emitting one finding per distinct problematic character per cell.
// Sheets or cells that fail to read are counted in Stats and skipped; the
// scan continues.
func (s *Scanner) Scan(wb *workbook.Workbook) models.ScanResult {
	result := models.ScanResult{BookName: wb.BookName()}

	for _, sheet := range wb.Sheets() {
		s.logger.Info("scanning sheet", zap.String("sheet", sheet))
		rows, err := wb.Rows(sheet)
		if err != nil {
			s.logger.Warn("skipping unreadable sheet",
				zap.String("sheet", sheet), zap.Error(err))
			result.Stats.SkippedSheets++
			continue
		}
		result.Stats.SheetsScanned++

		var headers []string
		if len(rows) > 0 {
			headers = rows[0]
		}

		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if value == "" || !isText(value) {
					continue
				}
				result.Stats.CellsScanned++
				findings := s.scanCell(sheet, rowIdx+1, colIdx+1, value, headers)
				result.Findings = append(result.Findings, findings...)
			}
		}
	}

	if len(result.Findings) > 0 {
		s.logger.Info("scan complete",
			zap.Int("findings", len(result.Findings)),
			zap.Int("cells", result.Stats.CellsScanned))
	}
	return result
}

// ScanCell classifies a single cell value and returns its findings. Used
// by the cleaning engine to refresh findings after a mutation.
func (s *Scanner) ScanCell(sheet string, row, col int, value string) []models.Finding {
	return s.scanCell(sheet, row, col, value, nil)
}

// Problematic reports whether r is problematic under this scanner's
// target set.
func (s *Scanner) Problematic(r rune) bool {
	ok, _ := classify.Classify(r, s.target)
	return ok
}

// scanCell builds a map from character to ordered offsets in one pass,
// then emits one finding per map entry in first-occurrence order.
func (s *Scanner) scanCell(sheet string, row, col int, value string, headers []string) []models.Finding {
	runes := []rune(value)
	positions := make(map[rune][]int)
	var order []rune

	for i, r := range runes {
		problematic, _ := classify.Classify(r, s.target)
		if !problematic {
			continue
		}
		if _, seen := positions[r]; !seen {
			order = append(order, r)
		}
		positions[r] = append(positions[r], i)
	}
	if len(order) == 0 {
		return nil
	}

	header := ""
	if row > 1 && col-1 < len(headers) {
		header = headers[col-1]
	}

	findings := make([]models.Finding, 0, len(order))
	for _, r := range order {
		_, category := classify.Classify(r, s.target)
		pos := positions[r]
		excerpt, caret := models.ContextLines(value, pos[0])
		findings = append(findings, models.Finding{
			Sheet:        sheet,
			Row:          row,
			Col:          col,
			ColumnHeader: header,
			Char:         r,
			Category:     category,
			Positions:    pos,
			CellValue:    value,
			Context:      excerpt + "\n" + caret,
		})
	}
	return findings
}

// isText reports whether a cell's formatted value should be treated as
// text. Values that parse as integers or floats came from numeric cells
// and are skipped.
func isText(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}
