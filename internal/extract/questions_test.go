package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpensNumberedItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		expect bool
	}{
		{line: "1. What is a closure?", expect: true},
		{line: "  2) Explain REST.", expect: true},
		{line: "10. Tenth item", expect: true},
		{line: "100. too wide for the marker window", expect: false},
		{line: "1 What is missing a marker", expect: false},
		{line: "- bullet", expect: false},
		{line: "Question 1. Not numbered first", expect: false},
		{line: "", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, OpensNumberedItem(tt.line))
		})
	}
}

func TestStripNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "What is a closure?", StripNumber("1. What is a closure?"))
	assert.Equal(t, "Explain REST.", StripNumber("12) Explain REST."))
	assert.Equal(t, "No marker here", StripNumber("No marker here"))
}

func TestQuestionsDropsShortItems(t *testing.T) {
	t.Parallel()

	raw := "1. What is a closure?\n\n2. Explain REST.\n\n3. X\n\n4. Describe caching strategies in depth.\n\n5. What is Docker?"

	got := Questions(raw)
	require.Equal(t, []string{
		"What is a closure?",
		"Explain REST.",
		"Describe caching strategies in depth.",
		"What is Docker?",
	}, got)
}

func TestQuestionsShortItemAlone(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Questions("3. X"))
}

func TestQuestionsJoinsWrappedLines(t *testing.T) {
	t.Parallel()

	raw := "Here are your questions:\n" +
		"1. How would you design a rate limiter\n" +
		"   for a public HTTP API?\n" +
		"2. What does the GIL change for\n" +
		"CPU bound Python code?\n"

	got := Questions(raw)
	require.Equal(t, []string{
		"How would you design a rate limiter for a public HTTP API?",
		"What does the GIL change for CPU bound Python code?",
	}, got)
}

func TestQuestionsCapsAtFive(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 1; i <= 8; i++ {
		b.WriteString(strings.Repeat(" ", i%2))
		b.WriteString(string(rune('0' + i)))
		b.WriteString(". Describe a production incident you handled\n")
	}

	got := Questions(b.String())
	assert.Len(t, got, MaxQuestions)
}

func TestQuestionsFallbackToLongLines(t *testing.T) {
	t.Parallel()

	raw := "Sure!\nWhat is the difference between a list and a tuple?\nok\nHow does Django handle migrations?"

	got := Questions(raw)
	require.Equal(t, []string{
		"What is the difference between a list and a tuple?",
		"How does Django handle migrations?",
	}, got)
}

func TestQuestionsEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Questions(""))
	assert.Empty(t, Questions("\n\n  \n"))
}

func TestQuestionsDeterministic(t *testing.T) {
	t.Parallel()

	raw := "1) Explain Python decorators with an example.\n2) What is a Docker layer?\n"
	assert.Equal(t, Questions(raw), Questions(raw))
}
