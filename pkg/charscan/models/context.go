package models

import "strings"

// contextWindow is the number of runes shown on each side of a marked
// position.
const contextWindow = 10

// ContextLines renders a bounded excerpt of value around pos (a 0-based
// rune offset) plus a caret line pointing at the character. The excerpt is
// wrapped in "..." markers; the caret line is padded so the caret sits
// under the marked character.
func ContextLines(value string, pos int) (excerpt, caret string) {
	runes := []rune(value)
	if pos < 0 || pos >= len(runes) {
		return "", ""
	}
	start := pos - contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + contextWindow + 1
	if end > len(runes) {
		end = len(runes)
	}
	excerpt = "..." + string(runes[start:end]) + "..."
	caret = strings.Repeat(" ", 3+pos-start) + "^"
	return excerpt, caret
}
