package interview

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// ExitKeywords end the interview when the candidate sends one of them.
var ExitKeywords = []string{"exit", "quit", "bye", "goodbye", "done", "thank you", "no more", "end"}

// ExitPolicy decides whether raw candidate input asks to end the session.
type ExitPolicy string

const (
	// ExitExact fires only when the whole input, without punctuation, case or
	// surrounding whitespace, is one keyword.
	ExitExact ExitPolicy = "exact"
	// ExitSubstring fires when any keyword occurs anywhere in the lower-cased
	// input. Kept for compatibility; it ends interviews on sentences like
	// "thank you for asking".
	ExitSubstring ExitPolicy = "substring"
)

// ParseExitPolicy maps a config value to a policy. Empty means ExitExact.
func ParseExitPolicy(name string) (ExitPolicy, error) {
	switch ExitPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", ExitExact:
		return ExitExact, nil
	case ExitSubstring:
		return ExitSubstring, nil
	default:
		return ExitExact, fmt.Errorf("unknown exit policy %q", name)
	}
}

// ShouldExit applies the policy to raw, untrimmed input.
func (p ExitPolicy) ShouldExit(raw string) bool {
	switch p {
	case ExitSubstring:
		lower := strings.ToLower(strings.TrimSpace(raw))
		for _, keyword := range ExitKeywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return false
	case ExitExact:
		return slices.Contains(ExitKeywords, normalizeExitInput(raw))
	default:
		return slices.Contains(ExitKeywords, normalizeExitInput(raw))
	}
}

func normalizeExitInput(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)
	return strings.Join(strings.Fields(stripped), " ")
}
