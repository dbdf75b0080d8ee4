package clean

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/scanner"
	"charscan/pkg/charscan/workbook"
)

// State is the engine's position in the cleaning loop.
type State int

const (
	// Iterating is the default state: findings are presented one at a
	// time for resolution.
	Iterating State = iota
	// SkipAllRemaining drains the rest of the queue without prompting
	// or editing.
	SkipAllRemaining
	// Done means the queue is exhausted.
	Done
)

// Engine drives cleaning over a live workbook. The workbook is exclusively
// owned by the engine for the duration of Run.
type Engine struct {
	wb      *workbook.Workbook
	scan    *scanner.Scanner
	source  DecisionSource
	logger  *zap.Logger
	state   State
	entries []models.CleaningLogEntry
	now     func() time.Time
}

// NewEngine creates a cleaning engine. The scanner must be the one that
// produced the finding queue so bulk scopes use the same target set.
func NewEngine(wb *workbook.Workbook, scan *scanner.Scanner, source DecisionSource, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		wb:     wb,
		scan:   scan,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Log returns the audit entries appended so far. The slice stays valid
// after a failed run so completed edits are never silently lost.
func (e *Engine) Log() []models.CleaningLogEntry {
	return e.entries
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// Run processes each finding in queue order, obtaining a decision for it
// and applying the edit at the decision's scope. Findings whose character
// no longer occurs in the live cell (because an earlier bulk edit already
// handled it) are resolved as no-ops without prompting. Context
// cancellation behaves like skip-all-remaining: the workbook and log stay
// consistent with the edits already applied.
func (e *Engine) Run(ctx context.Context, findings []models.Finding) ([]models.CleaningLogEntry, error) {
	e.state = Iterating

	for _, f := range findings {
		if e.state != Iterating {
			break
		}
		if ctx.Err() != nil {
			e.state = SkipAllRemaining
			break
		}

		// Re-read the live cell: earlier scoped edits may have made
		// this finding stale.
		live, err := e.wb.CellValue(f.Sheet, f.Row, f.Col)
		if err != nil {
			e.logger.Warn("skipping unreadable cell",
				zap.String("sheet", f.Sheet), zap.String("cell", f.CellRef()), zap.Error(err))
			continue
		}
		if !strings.ContainsRune(live, f.Char) {
			continue
		}
		f.CellValue = live

		decision, err := e.source.GetDecision(f)
		if err != nil {
			return e.entries, fmt.Errorf("obtaining decision for %s!%s: %w", f.Sheet, f.CellRef(), err)
		}
		if err := decision.Validate(); err != nil {
			return e.entries, fmt.Errorf("decision for %s!%s: %w", f.Sheet, f.CellRef(), err)
		}

		if err := e.apply(f, decision); err != nil {
			return e.entries, err
		}
	}

	e.state = Done
	return e.entries, nil
}

func (e *Engine) apply(f models.Finding, d models.CleaningDecision) error {
	switch d.Operation {
	case models.OpSkip:
		return nil
	case models.OpSkipAll:
		e.state = SkipAllRemaining
		return nil
	}

	replacement := d.ReplacementText()
	switch d.Scope {
	case models.ScopeCell:
		return e.editCell(f.Sheet, f.Row, f.Col, f.Char, d.Operation, replacement)
	case models.ScopeCharEverywhere:
		return e.editEverywhere(func(r rune) bool { return r == f.Char }, d.Operation, replacement)
	case models.ScopeAllEverywhere:
		return e.editEverywhere(e.scan.Problematic, d.Operation, replacement)
	default:
		return fmt.Errorf("scope %q: %w", d.Scope, models.ErrInvalidDecision)
	}
}

// editCell removes or replaces every occurrence of char in one cell and
// appends one audit entry if the value changed.
func (e *Engine) editCell(sheet string, row, col int, char rune, op models.Operation, replacement string) error {
	value, err := e.wb.CellValue(sheet, row, col)
	if err != nil {
		return err
	}
	result := strings.ReplaceAll(value, string(char), replacement)
	if result == value {
		return nil
	}
	if err := e.wb.SetCellValue(sheet, row, col, result); err != nil {
		return err
	}
	e.record(sheet, row, col, char, op, replacement, value, result)
	return nil
}

// editEverywhere visits every cell of every sheet, including cells outside
// the original finding queue, editing each character matched by the
// predicate. One audit entry is appended per distinct (cell, character)
// pair actually changed.
func (e *Engine) editEverywhere(match func(rune) bool, op models.Operation, replacement string) error {
	for _, sheet := range e.wb.Sheets() {
		rows, err := e.wb.Rows(sheet)
		if err != nil {
			e.logger.Warn("skipping unreadable sheet during bulk edit",
				zap.String("sheet", sheet), zap.Error(err))
			continue
		}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if value == "" {
					continue
				}
				if err := e.editMatched(sheet, rowIdx+1, colIdx+1, value, match, op, replacement); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine) editMatched(sheet string, row, col int, value string, match func(rune) bool, op models.Operation, replacement string) error {
	// One pass to collect the distinct matched characters in occurrence
	// order, then one sequential edit per character so each audit entry
	// records the value it changed.
	var chars []rune
	seen := make(map[rune]bool)
	for _, r := range value {
		if match(r) && !seen[r] {
			seen[r] = true
			chars = append(chars, r)
		}
	}
	if len(chars) == 0 {
		return nil
	}

	current := value
	for _, r := range chars {
		result := strings.ReplaceAll(current, string(r), replacement)
		if result == current {
			continue
		}
		if err := e.wb.SetCellValue(sheet, row, col, result); err != nil {
			return err
		}
		e.record(sheet, row, col, r, op, replacement, current, result)
		current = result
	}
	return nil
}

func (e *Engine) record(sheet string, row, col int, char rune, op models.Operation, replacement, original, result string) {
	entry := models.CleaningLogEntry{
		Timestamp:   e.now(),
		Sheet:       sheet,
		Row:         row,
		Col:         col,
		Char:        char,
		Operation:   op,
		Replacement: replacement,
		Original:    original,
		Result:      result,
	}
	e.entries = append(e.entries, entry)
	e.logger.Info("cleaned cell",
		zap.String("sheet", sheet),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.String("char", fmt.Sprintf("0x%02x", char)),
		zap.String("operation", string(op)))
}
