package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	// fallbackFeedbackLines is how many leading lines are shown when no bullet survives.
	fallbackFeedbackLines = 4
	minFeedbackLength     = 10
)

var (
	bulletGlyphs   = []string{"•", "-", "*"}
	feedbackLabels = []string{"Assessment:", "Experience:", "Suggestion:", "Experience Match:", "Improvement:"}

	// conclusionMarkers belong to the end-of-interview summary; once the model
	// starts writing one, nothing after it is feedback.
	conclusionMarkers = []string{"Thank you", "Interview Summary", "Good luck", "Next Steps", "Name:", "Years"}
)

// IsBulletOrLabel reports whether a line is a bullet or carries an evaluation label.
func IsBulletOrLabel(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			return true
		}
	}
	for _, label := range feedbackLabels {
		if strings.Contains(trimmed, label) {
			return true
		}
	}
	return false
}

// IsConclusionLeak reports whether a line looks like interview summary text.
func IsConclusionLeak(line string) bool {
	for _, marker := range conclusionMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Feedback extracts the per-answer evaluation from a completion. Scanning stops
// at the first conclusion marker. Bullet and labelled lines are kept; without
// any, the first few scanned lines are used. Results of minFeedbackLength
// characters or fewer come back empty, meaning nothing should be shown.
func Feedback(raw string) string {
	lines := strings.Split(raw, "\n")

	scanned := lines
	var kept []string
	for i, line := range lines {
		if IsConclusionLeak(line) {
			scanned = lines[:i]
			break
		}
		if IsBulletOrLabel(line) {
			kept = append(kept, strings.TrimSpace(line))
		}
	}

	var text string
	if len(kept) > 0 {
		text = strings.Join(kept, "\n")
	} else {
		if len(scanned) > fallbackFeedbackLines {
			scanned = scanned[:fallbackFeedbackLines]
		}
		text = strings.TrimSpace(strings.Join(scanned, "\n"))
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) <= minFeedbackLength {
		return ""
	}
	return text
}
