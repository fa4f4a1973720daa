package interview

import "strings"

var forbiddenInput = []string{"<", ">", `"`, "'", ";", "--", "/*", "*/"}

// SanitizeInput strips markup and statement delimiters from candidate text and trims it.
func SanitizeInput(s string) string {
	for _, f := range forbiddenInput {
		s = strings.ReplaceAll(s, f, "")
	}
	return strings.TrimSpace(s)
}

// MaskEmail hides everything except the first and last character of the local part.
func MaskEmail(email string) string {
	user, _, ok := strings.Cut(email, "@")
	if !ok || email == "" {
		return "***@***.com"
	}

	runes := []rune(user)
	switch {
	case len(runes) == 0:
		return "***@***"
	case len(runes) <= 2:
		return string(runes[0]) + "***@***"
	default:
		return string(runes[0]) + "***" + string(runes[len(runes)-1]) + "@***"
	}
}

// MaskPhone keeps the last four characters of a phone number.
func MaskPhone(phone string) string {
	runes := []rune(phone)
	if len(runes) < 4 {
		return "***-***-****"
	}
	return "***-***-" + string(runes[len(runes)-4:])
}
