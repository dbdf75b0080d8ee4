// Package output persists scan and cleaning artifacts: the results CSV,
// the findings report, the cleaning log, and the cleaned workbook path.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/workbook"
)

// Sink writes run artifacts next to the input workbook (or into an
// explicit output directory), with timestamped names so repeated runs
// never clobber each other.
type Sink struct {
	inputPath string
	dir       string
	runID     uuid.UUID
	stamp     string
	logger    *zap.Logger
}

// NewSink creates a sink for one run. An empty dir places artifacts next
// to the input file.
func NewSink(inputPath, dir string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{
		inputPath: inputPath,
		dir:       dir,
		runID:     uuid.New(),
		stamp:     time.Now().Format("20060102_150405"),
		logger:    logger,
	}
}

// RunID identifies this run in the findings report and cleaning log.
func (s *Sink) RunID() string { return s.runID.String() }

// path builds "<base>_<suffix>_<timestamp><ext>" for this run.
func (s *Sink) path(suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(s.inputPath), filepath.Ext(s.inputPath))
	dir := s.dir
	if dir == "" {
		dir = filepath.Dir(s.inputPath)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s%s", base, suffix, s.stamp, ext))
}

// CleanedPath is where the cleaned workbook copy is saved.
func (s *Sink) CleanedPath() string {
	return s.path("cleaned", ".xlsx")
}

func (s *Sink) ensureDir() error {
	if s.dir == "" {
		return nil
	}
	return os.MkdirAll(s.dir, 0755)
}

// WriteResultsCSV persists the tabular rows and returns the file path.
func (s *Sink) WriteResultsCSV(rows [][]string) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", &workbook.WriteError{Path: s.dir, Err: err}
	}
	path := s.path("char_scan_results", ".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", &workbook.WriteError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", &workbook.WriteError{Path: path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", &workbook.WriteError{Path: path, Err: err}
	}
	s.logger.Info("results saved", zap.String("path", path))
	return path, nil
}

// WriteFindingsReport persists the console rendering with a report header
// and returns the file path.
func (s *Sink) WriteFindingsReport(consoleText string) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", &workbook.WriteError{Path: s.dir, Err: err}
	}
	path := s.path("findings_report", ".txt")

	var b strings.Builder
	fmt.Fprintf(&b, "Problematic Character Report for: %s\n", filepath.Base(s.inputPath))
	fmt.Fprintf(&b, "Generated on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n\n", s.runID)
	b.WriteString(consoleText)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", &workbook.WriteError{Path: path, Err: err}
	}
	s.logger.Info("findings report saved", zap.String("path", path))
	return path, nil
}

// WriteCleaningLog persists one change block per audit entry and returns
// the file path.
func (s *Sink) WriteCleaningLog(entries []models.CleaningLogEntry) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", &workbook.WriteError{Path: s.dir, Err: err}
	}
	path := s.path("cleaning_log", ".txt")

	var b strings.Builder
	fmt.Fprintf(&b, "Cleaning Log for %s\n", s.inputPath)
	fmt.Fprintf(&b, "Created on %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n\n", s.runID)
	fmt.Fprintf(&b, "Total edits applied: %d\n\n", len(entries))

	for i, e := range entries {
		cell, err := cellRef(e.Col, e.Row)
		if err != nil {
			cell = fmt.Sprintf("R%dC%d", e.Row, e.Col)
		}
		fmt.Fprintf(&b, "Change %d:\n", i+1)
		fmt.Fprintf(&b, "  Time: %s\n", e.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(&b, "  Sheet: %s\n", e.Sheet)
		fmt.Fprintf(&b, "  Cell: %s\n", cell)
		fmt.Fprintf(&b, "  Character: 0x%02x\n", e.Char)
		fmt.Fprintf(&b, "  Operation: %s\n", e.Operation)
		if e.Operation == models.OpReplace {
			fmt.Fprintf(&b, "  Replacement: %s\n", e.Replacement)
		}
		fmt.Fprintf(&b, "  Original: %s\n", e.Original)
		fmt.Fprintf(&b, "  Cleaned: %s\n\n", e.Result)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", &workbook.WriteError{Path: path, Err: err}
	}
	s.logger.Info("cleaning log saved", zap.String("path", path))
	return path, nil
}
