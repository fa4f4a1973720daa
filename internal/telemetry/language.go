package telemetry

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is reported whenever detection fails or lands outside the
// supported set.
const DefaultLanguage = "en"

// SupportedLanguages lists the codes the interview can be conducted in.
var SupportedLanguages = []string{"en", "es", "fr", "de", "pt", "it", "ja", "zh-cn", "hi"}

// minDetectRunes keeps very short inputs such as "ok" or a phone number from
// flipping the session language.
const minDetectRunes = 12

// LanguageDetector guesses the language of candidate input.
type LanguageDetector struct{}

// NewLanguageDetector returns a detector backed by whatlanggo.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// Detect returns a supported language code, DefaultLanguage when unsure.
func (d *LanguageDetector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minDetectRunes {
		return DefaultLanguage
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return DefaultLanguage
	}

	return normalizeLanguage(info.Lang.Iso6391())
}

func normalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "zh" {
		code = "zh-cn"
	}

	for _, supported := range SupportedLanguages {
		if code == supported {
			return code
		}
	}
	return DefaultLanguage
}

// LanguageName renders a language code in English, e.g. "de" -> "German".
// Unknown codes are returned unchanged.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}

	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
