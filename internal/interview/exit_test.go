package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect bool
	}{
		{input: "bye", expect: true},
		{input: "  BYE!  ", expect: true},
		{input: "Thank you.", expect: true},
		{input: "no   more", expect: true},
		{input: "Thank you for the opportunity", expect: false},
		{input: "No thanks, but no more questions please.", expect: false},
		{input: "I am done with Go", expect: false},
		{input: "", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, ExitExact.ShouldExit(tt.input))
		})
	}
}

func TestExitSubstring(t *testing.T) {
	t.Parallel()

	assert.True(t, ExitSubstring.ShouldExit("Thank you for the opportunity"))
	assert.True(t, ExitSubstring.ShouldExit("No thanks, but no more questions please."))
	// "end" hides inside "backend".
	assert.True(t, ExitSubstring.ShouldExit("Backend Engineer"))
	assert.False(t, ExitSubstring.ShouldExit("Python, Go"))
}

func TestParseExitPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseExitPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ExitExact, p)

	p, err = ParseExitPolicy(" Substring ")
	require.NoError(t, err)
	assert.Equal(t, ExitSubstring, p)

	_, err = ParseExitPolicy("fuzzy")
	assert.Error(t, err)
}
