package interview

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldValue is a validated, typed value for the field collected at Stage.
type FieldValue struct {
	Stage Stage
	Text  string
	Years float64
	List  []string
}

// ValidateField coerces trimmed user text into the value stored for stage.
// It returns false when the text cannot be used and the stage has to be asked again.
func ValidateField(stage Stage, text string) (FieldValue, bool) {
	if text == "" {
		return FieldValue{}, false
	}

	switch stage {
	case StageName, StageEmail, StagePhone, StageLocation:
		return FieldValue{Stage: stage, Text: text}, true
	case StageExperience:
		years, ok := parseYears(text)
		if !ok {
			return FieldValue{}, false
		}
		return FieldValue{Stage: stage, Years: years}, true
	case StagePosition, StageTechStack:
		return FieldValue{Stage: stage, List: splitList(text)}, true
	case StageGreeting, StageQuestions, StageConclusion:
		return FieldValue{}, false
	default:
		return FieldValue{}, false
	}
}

// parseYears reads the first whitespace-delimited token as a number of years.
// Negative and non-finite values are rejected; large values are kept as typed.
func parseYears(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}

	years, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0, false
	}
	return years, true
}

// splitList splits on commas and trims every part. Empty parts are kept so the
// stored list mirrors exactly what the candidate typed.
func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// FieldDescription names the field collected at stage for clarification messages.
func FieldDescription(stage Stage) string {
	switch stage {
	case StageName:
		return "full name"
	case StageEmail:
		return "email address"
	case StagePhone:
		return "phone number"
	case StageExperience:
		return "years of experience"
	case StagePosition:
		return "desired position(s)"
	case StageLocation:
		return "current location"
	case StageTechStack:
		return "tech stack"
	case StageGreeting, StageQuestions, StageConclusion:
		return "answer"
	default:
		return "answer"
	}
}

var (
	emailValidatorOnce sync.Once
	emailValidator     *validator.Validate
)

// LooksLikeEmail is an advisory format check. Emails are stored whatever it returns.
func LooksLikeEmail(s string) bool {
	emailValidatorOnce.Do(func() {
		emailValidator = validator.New()
	})
	return emailValidator.Var(s, "required,email") == nil
}
