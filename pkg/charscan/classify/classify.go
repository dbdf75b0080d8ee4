// Package classify decides whether a character is problematic and computes
// a human-readable category for it.
package classify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// defaultLo and defaultHi bound the default problematic range: the
// extended-ASCII block most often corrupted by encoding mismatches.
const (
	defaultLo rune = 0x80
	defaultHi rune = 0xFF
)

// Set is an explicit set of characters to treat as problematic. A nil Set
// means "use the default 0x80-0xFF range".
type Set map[rune]struct{}

// NewSet builds a Set from the given runes.
func NewSet(runes ...rune) Set {
	s := make(Set, len(runes))
	for _, r := range runes {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Runes returns the set members in ascending order.
func (s Set) Runes() []rune {
	out := make([]rune, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseSet parses a comma-separated character specification into a Set.
// Each item may be a literal character, a \x81-style escape, or a U+0081
// codepoint. An empty specification yields a nil Set (default range).
func ParseSet(spec string) (Set, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	s := make(Set)
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		r, err := parseChar(item)
		if err != nil {
			return nil, err
		}
		s[r] = struct{}{}
	}
	if len(s) == 0 {
		return nil, nil
	}
	return s, nil
}

func parseChar(item string) (rune, error) {
	switch {
	case strings.HasPrefix(item, `\x`) || strings.HasPrefix(item, `\X`):
		n, err := strconv.ParseUint(item[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid character escape %q: %w", item, err)
		}
		return rune(n), nil
	case strings.HasPrefix(item, "U+") || strings.HasPrefix(item, "u+"):
		n, err := strconv.ParseUint(item[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid codepoint %q: %w", item, err)
		}
		return rune(n), nil
	case strings.HasPrefix(item, "0x") || strings.HasPrefix(item, "0X"):
		n, err := strconv.ParseUint(item[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid codepoint %q: %w", item, err)
		}
		return rune(n), nil
	default:
		runes := []rune(item)
		if len(runes) != 1 {
			return 0, fmt.Errorf("character spec %q must be a single character or an escape like \\x81", item)
		}
		return runes[0], nil
	}
}

// Classify reports whether r is problematic and returns its category label.
// With a nil target set, any codepoint in 0x80-0xFF is problematic; with an
// explicit set, only its members are, regardless of range. Classification
// is total: unclassifiable input yields the UNDEFINED category, never an
// error.
func Classify(r rune, target Set) (bool, string) {
	problematic := false
	if target == nil {
		problematic = r >= defaultLo && r <= defaultHi
	} else {
		problematic = target.Contains(r)
	}
	return problematic, Category(r)
}

// Category computes the category label for r independent of problematic
// membership: "Printable" for characters with a visible glyph, otherwise a
// non-printable label carrying the Unicode general category and the
// character's Unicode name.
func Category(r rune) string {
	if isPrintable(r) {
		return "Printable"
	}
	cat := generalCategory(r)
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		name = "UNDEFINED"
	}
	return fmt.Sprintf("Non-printable - Unicode category: %s (%s)", cat, name)
}

// isPrintable is a locale-independent printability test: control
// characters, surrogates, and anything in a C* general category are
// non-printable.
func isPrintable(r rune) bool {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return false
	}
	if unicode.Is(unicode.Cs, r) {
		return false
	}
	if unicode.Is(unicode.C, r) {
		return false
	}
	return unicode.IsGraphic(r)
}

// generalCategory returns the two-letter Unicode general category code for
// r, or "UNDEFINED" when no table matches.
func generalCategory(r rune) string {
	for name, table := range unicode.Categories {
		if len(name) == 2 && unicode.Is(table, r) {
			return name
		}
	}
	return "UNDEFINED"
}
