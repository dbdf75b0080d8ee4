// Package charscan scans spreadsheet cells for problematic characters and
// optionally cleans them in place.
package charscan

import (
	"go.uber.org/zap"

	"charscan/pkg/charscan/classify"
)

// Options configures scanning and cleaning behavior.
type Options struct {
	// TargetChars restricts the scan to an explicit character set. Nil
	// means the default 0x80-0xFF range.
	TargetChars classify.Set
	// Logger receives progress and audit events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns options for a default-range scan.
func DefaultOptions() Options {
	return Options{}
}
