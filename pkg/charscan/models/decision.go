package models

import "errors"

// Scope is the breadth of a cleaning operation.
type Scope string

const (
	// ScopeCell applies to the current character in the current cell only.
	ScopeCell Scope = "this-cell"
	// ScopeCharEverywhere applies to every instance of the current
	// character in every cell of the workbook.
	ScopeCharEverywhere Scope = "all-cells-this-char"
	// ScopeAllEverywhere applies to every problematic character of any
	// kind in every cell of the workbook.
	ScopeAllEverywhere Scope = "all-cells-all-chars"
)

// Operation is the action taken on matched characters.
type Operation string

const (
	// OpDelete removes the matched characters.
	OpDelete Operation = "delete"
	// OpReplace substitutes replacement text for each matched character.
	OpReplace Operation = "replace"
	// OpSkip leaves the current cell unchanged.
	OpSkip Operation = "skip"
	// OpSkipAll leaves every remaining queued finding unchanged.
	OpSkipAll Operation = "skip-all"
)

// ErrInvalidDecision indicates a decision violating its contract, such as a
// replace operation with no replacement text supplied.
var ErrInvalidDecision = errors.New("invalid cleaning decision")

// CleaningDecision is the resolution chosen for one finding or bulk scope.
type CleaningDecision struct {
	// Scope is the breadth of the edit. Ignored for skip operations.
	Scope Scope `json:"scope"`
	// Operation is the action to take.
	Operation Operation `json:"operation"`
	// Replacement is the substitute text for OpReplace. It must be set
	// (possibly to the empty string) before a replace is applied.
	Replacement *string `json:"replacement,omitempty"`
}

// Validate checks the decision's internal contract. A replace without
// replacement text is rejected rather than coerced to a delete.
func (d CleaningDecision) Validate() error {
	switch d.Operation {
	case OpDelete, OpSkip, OpSkipAll:
		return nil
	case OpReplace:
		if d.Replacement == nil {
			return ErrInvalidDecision
		}
		return nil
	default:
		return ErrInvalidDecision
	}
}

// ReplacementText returns the replacement string, or "" for deletes.
func (d CleaningDecision) ReplacementText() string {
	if d.Operation == OpReplace && d.Replacement != nil {
		return *d.Replacement
	}
	return ""
}
