package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(t *testing.T, m *Machine, inputs map[Stage]string) {
	t.Helper()

	for _, stage := range Stages {
		if !stage.Collects() {
			continue
		}
		v, ok := ValidateField(stage, inputs[stage])
		require.True(t, ok, stage.String())
		_, err := m.Apply(v)
		require.NoError(t, err, stage.String())
	}
}

var profile = map[Stage]string{
	StageName:       "Jane Doe",
	StageEmail:      "jane@example.com",
	StagePhone:      "+1 555 0100",
	StageExperience: "4 years",
	StagePosition:   "Backend Engineer, SRE",
	StageLocation:   "Berlin",
	StageTechStack:  "Python, Docker",
}

func TestMachineStartOnce(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	require.True(t, m.Start())
	assert.False(t, m.Start())
	assert.Equal(t, StageName, m.Stage())
	assert.Equal(t, []Message{{Role: RoleAssistant, Content: Greeting}}, m.Messages())
}

func TestMachineApplyAdvancesOneStage(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()

	next, err := m.Apply(FieldValue{Stage: StageName, Text: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, StageEmail, next)
	assert.Equal(t, "Jane", m.Record().Name)
	assert.Equal(t, FieldPrompt(StageEmail), m.Messages()[m.MessageCount()-1].Content)

	_, err = m.Apply(FieldValue{Stage: StagePhone, Text: "123"})
	require.ErrorIs(t, err, ErrStageMismatch)
	assert.Equal(t, StageEmail, m.Stage())
}

func TestMachineCollectsFullProfile(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	applyAll(t, m, profile)

	record := m.Record()
	assert.Equal(t, StageQuestions, m.Stage())
	assert.Equal(t, "Jane Doe", record.Name)
	require.NotNil(t, record.YearsOfExperience)
	assert.InDelta(t, 4.0, *record.YearsOfExperience, 1e-9)
	assert.Equal(t, []string{"Backend Engineer", "SRE"}, record.DesiredPositions)
	assert.Equal(t, []string{"Python", "Docker"}, record.TechStack)
	assert.Equal(t, m.Messages(), m.Transcript())
}

func TestMachineClarifyKeepsStage(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	before := m.MessageCount()

	m.Clarify()
	assert.Equal(t, StageName, m.Stage())
	assert.Equal(t, before+1, m.MessageCount())
	assert.Contains(t, m.Messages()[before].Content, "full name")
}

func TestMachineQuestionsLoop(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	applyAll(t, m, profile)

	assert.False(t, m.SetQuestions(nil))
	assert.Equal(t, QuestionsPending, m.Messages()[m.MessageCount()-1].Content)
	_, ok := m.CurrentQuestion()
	assert.False(t, ok)

	questions := []string{"q1?", "q2?", "q3?", "q4?", "q5?", "q6?"}
	require.True(t, m.SetQuestions(questions))
	assert.Len(t, m.Questions(), QuestionCount)
	assert.False(t, m.SetQuestions([]string{"again?"}))

	for i := 0; i < QuestionCount-1; i++ {
		q, ok := m.CurrentQuestion()
		require.True(t, ok)
		assert.Equal(t, questions[i], q)
		assert.False(t, m.AdvanceQuestion("- Assessment: fine"))
		assert.Equal(t, i+1, m.QuestionIndex())
	}

	before := m.MessageCount()
	assert.True(t, m.AdvanceQuestion(""))
	assert.Equal(t, QuestionCount, m.QuestionIndex())
	assert.Equal(t, before, m.MessageCount())
}

func TestMachineConcludeIsIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	applyAll(t, m, profile)

	require.True(t, m.Conclude())
	assert.False(t, m.Conclude())
	assert.Equal(t, StageConclusion, m.Stage())

	transcript := m.Transcript()
	summary := transcript[len(transcript)-1].Content
	assert.Contains(t, summary, "Interview Summary")

	summaries := 0
	for _, msg := range transcript {
		if msg.Content == summary {
			summaries++
		}
	}
	assert.Equal(t, 1, summaries)
	assert.Equal(t, m.Messages(), m.Transcript())
}

func TestSummaryTemplate(t *testing.T) {
	t.Parallel()

	years := 4.5
	got := Summary(&CandidateRecord{
		Name:              "Jane",
		YearsOfExperience: &years,
		DesiredPositions:  []string{"SRE", "Backend"},
		TechStack:         []string{"Go", "Docker"},
	})
	assert.Contains(t, got, "- Name: Jane")
	assert.Contains(t, got, "- Years of Experience: 4.5")
	assert.Contains(t, got, "- Desired Positions: SRE, Backend")
	assert.Contains(t, got, "- Tech Stack: Go, Docker")

	empty := Summary(&CandidateRecord{})
	assert.Contains(t, empty, "- Name: N/A")
	assert.Contains(t, empty, "- Years of Experience: N/A")
}

func TestQuestionsPromptUsesDifficulty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "beginner", Difficulty(1.9))
	assert.Equal(t, "intermediate", Difficulty(2))
	assert.Equal(t, "advanced", Difficulty(5))

	prompt := QuestionsPrompt([]string{"A", "B", "C", "D", "E", "F"}, 4)
	assert.Contains(t, prompt, "A, B, C, D, E")
	assert.NotContains(t, prompt, "E, F")
	assert.Contains(t, prompt, "intermediate")
	assert.NotContains(t, prompt, "{{")

	eval := EvaluationPrompt("What is Go?", "A language", "Go", 3.7)
	assert.Contains(t, eval, "What is Go?")
	assert.Contains(t, eval, "A language")
	assert.NotContains(t, eval, "{{")
}
