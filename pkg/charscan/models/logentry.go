package models

import "time"

// CleaningLogEntry is one append-only audit record for one applied edit.
// Exactly one entry is created per (cell, character) pair actually changed.
type CleaningLogEntry struct {
	// Timestamp is when the edit was applied.
	Timestamp time.Time `json:"timestamp"`
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// Row is the cell row (1-based).
	Row int `json:"row"`
	// Col is the cell column (1-based).
	Col int `json:"col"`
	// Char is the character that was removed or replaced.
	Char rune `json:"char"`
	// Operation is the action applied (delete or replace).
	Operation Operation `json:"operation"`
	// Replacement is the substituted text, empty for deletes.
	Replacement string `json:"replacement,omitempty"`
	// Original is the cell value before the edit.
	Original string `json:"original"`
	// Result is the cell value after the edit.
	Result string `json:"result"`
}
