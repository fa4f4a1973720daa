package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxQuestions caps the extracted list.
	MaxQuestions = 5

	// minQuestionLength discards numbered artifacts with no real content.
	minQuestionLength = 10
	// minFallbackLength is the shortest unnumbered line accepted as a question.
	minFallbackLength = 15
)

// OpensNumberedItem reports whether a line starts a numbered list item such as
// "1. ..." or "2) ...": a leading decimal digit with a '.' or ')' within the
// first three characters.
func OpensNumberedItem(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || line[0] < '0' || line[0] > '9' {
		return false
	}

	head := line
	if len(head) > 3 {
		head = head[:3]
	}
	return strings.ContainsAny(head, ".)")
}

// StripNumber removes the list marker of a numbered item.
func StripNumber(item string) string {
	item = strings.TrimSpace(item)
	rest := strings.TrimLeft(item, "0123456789")
	if rest == item {
		return item
	}
	if rest != "" && (rest[0] == '.' || rest[0] == ')') {
		rest = rest[1:]
	}
	return strings.TrimSpace(rest)
}

// Questions extracts at most MaxQuestions questions from a completion.
//
// A numbered line opens a question and following non-empty, non-numbered lines
// are appended to it, so a question wrapped over several lines stays whole. A
// blank line closes the open question. Questions of minQuestionLength
// characters or fewer (list marker included) are dropped and the marker is
// stripped from the rest. When nothing numbered survives, every non-empty line
// longer than minFallbackLength characters is taken as a question.
func Questions(raw string) []string {
	lines := strings.Split(raw, "\n")

	var (
		found []string
		open  []string
	)

	closeOpen := func() {
		if open == nil {
			return
		}
		joined := strings.Join(open, " ")
		if utf8.RuneCountInString(joined) > minQuestionLength {
			found = append(found, StripNumber(joined))
		}
		open = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case OpensNumberedItem(trimmed):
			closeOpen()
			open = []string{trimmed}
		case trimmed == "":
			closeOpen()
		case open != nil:
			open = append(open, trimmed)
		}
	}
	closeOpen()

	if len(found) == 0 {
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if utf8.RuneCountInString(trimmed) > minFallbackLength {
				found = append(found, trimmed)
			}
		}
	}

	if len(found) > MaxQuestions {
		found = found[:MaxQuestions]
	}
	return found
}
