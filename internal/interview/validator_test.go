package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFieldVerbatimStages(t *testing.T) {
	t.Parallel()

	for _, stage := range []Stage{StageName, StageEmail, StagePhone, StageLocation} {
		v, ok := ValidateField(stage, "anything at all")
		require.True(t, ok, stage.String())
		assert.Equal(t, FieldValue{Stage: stage, Text: "anything at all"}, v)
	}
}

func TestValidateFieldExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		years float64
		ok    bool
	}{
		{input: "5 years", years: 5, ok: true},
		{input: "5", years: 5, ok: true},
		{input: "2.5 yrs", years: 2.5, ok: true},
		{input: "0", years: 0, ok: true},
		{input: "500", years: 500, ok: true},
		{input: "abc", ok: false},
		{input: "about 5", ok: false},
		{input: "-3", ok: false},
		{input: "NaN", ok: false},
		{input: "Inf years", ok: false},
		{input: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			v, ok := ValidateField(StageExperience, tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.years, v.Years, 1e-9)
			}
		})
	}
}

func TestValidateFieldListsKeepEmptyParts(t *testing.T) {
	t.Parallel()

	v, ok := ValidateField(StageTechStack, "Python, Docker,, Go ,")
	require.True(t, ok)
	assert.Equal(t, []string{"Python", "Docker", "", "Go", ""}, v.List)

	v, ok = ValidateField(StagePosition, "Backend Engineer, Backend Engineer")
	require.True(t, ok)
	assert.Equal(t, []string{"Backend Engineer", "Backend Engineer"}, v.List)
}

func TestValidateFieldRejects(t *testing.T) {
	t.Parallel()

	_, ok := ValidateField(StageName, "")
	assert.False(t, ok)

	_, ok = ValidateField(StageQuestions, "an answer")
	assert.False(t, ok)
}

func TestLooksLikeEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, LooksLikeEmail("jane.doe@example.com"))
	assert.False(t, LooksLikeEmail("jane at example"))
	assert.False(t, LooksLikeEmail(""))
}
