package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"en":  "en",
		"DE":  "de",
		"zh":  "zh-cn",
		"ru":  DefaultLanguage,
		"":    DefaultLanguage,
		" ja": "ja",
	}

	for in, want := range cases {
		assert.Equal(t, want, normalizeLanguage(in), in)
	}
}

func TestDetectFallsBackOnShortInput(t *testing.T) {
	t.Parallel()

	d := NewLanguageDetector()
	assert.Equal(t, DefaultLanguage, d.Detect("ok"))
	assert.Equal(t, DefaultLanguage, d.Detect("   "))
}

func TestDetectSpanish(t *testing.T) {
	t.Parallel()

	d := NewLanguageDetector()
	got := d.Detect("Hola, me llamo Juan y trabajo como desarrollador de software en Madrid desde hace muchos años.")
	assert.Equal(t, "es", got)
}

func TestLanguageName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "German", LanguageName("de"))
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "not a tag!", LanguageName("not a tag!"))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LabelPositive, Label(0.5))
	assert.Equal(t, LabelNeutral, Label(0.1))
	assert.Equal(t, LabelNeutral, Label(-0.1))
	assert.Equal(t, LabelNegative, Label(-0.11))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Summary{Label: LabelNeutral}, Summarize(nil))

	got := Summarize([]float64{0.6, 0.2, -0.2})
	assert.InDelta(t, 0.2, got.Average, 1e-9)
	assert.Equal(t, LabelPositive, got.Label)
	assert.Equal(t, 3, got.Samples)
}

func TestPolarity(t *testing.T) {
	t.Parallel()

	s := NewSentimentScorer()
	assert.Zero(t, s.Polarity("  "))
	assert.Greater(t, s.Polarity("I love this, it is great and wonderful!"), positiveThreshold)
	assert.Less(t, s.Polarity("This is terrible, I hate it."), negativeThreshold)
}
