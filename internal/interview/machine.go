package interview

import (
	"errors"
	"fmt"
)

var (
	// ErrStageMismatch is returned when a value is applied to a stage that is not current.
	ErrStageMismatch = errors.New("value does not belong to the current stage")
	// ErrFieldSet is returned when a collected field would be overwritten.
	ErrFieldSet = errors.New("field is already set")
)

// Machine owns the conversation stage, the candidate record and the message logs
// of one interview. It performs no I/O; the Session drives it.
type Machine struct {
	stage  Stage
	record CandidateRecord

	// messages is what the candidate sees, transcript is what gets persisted.
	// Both are only ever appended through say/hear so they never diverge.
	messages   []Message
	transcript []Message

	questions     []string
	questionIndex int

	sentiment []float64
	language  string

	concluded bool
}

// NewMachine returns a machine at the greeting stage.
func NewMachine() *Machine {
	return &Machine{stage: StageGreeting, language: "en"}
}

func (m *Machine) say(content string) {
	msg := Message{Role: RoleAssistant, Content: content}
	m.messages = append(m.messages, msg)
	m.transcript = append(m.transcript, msg)
}

func (m *Machine) hear(content string) {
	msg := Message{Role: RoleUser, Content: content}
	m.messages = append(m.messages, msg)
	m.transcript = append(m.transcript, msg)
}

// Start emits the greeting and moves to the name stage. It is a no-op once the
// interview has begun.
func (m *Machine) Start() bool {
	if m.stage != StageGreeting || len(m.messages) > 0 {
		return false
	}
	m.say(Greeting)
	m.stage = NextStage(StageGreeting)
	return true
}

// AddUser records a candidate turn.
func (m *Machine) AddUser(content string) { m.hear(content) }

// AddAssistant records an assistant turn that is not produced by a transition,
// such as a visible LLM error.
func (m *Machine) AddAssistant(content string) {
	if content == "" {
		return
	}
	m.say(content)
}

// Apply stores a validated field and advances to the next stage, asking for the
// next field when there is one.
func (m *Machine) Apply(v FieldValue) (Stage, error) {
	if v.Stage != m.stage || !m.stage.Collects() {
		return m.stage, fmt.Errorf("%w: got %s, current %s", ErrStageMismatch, v.Stage, m.stage)
	}
	if m.record.Has(v.Stage) {
		return m.stage, fmt.Errorf("%w: %s", ErrFieldSet, v.Stage)
	}

	switch v.Stage {
	case StageName:
		m.record.Name = v.Text
	case StageEmail:
		m.record.Email = v.Text
	case StagePhone:
		m.record.Phone = v.Text
	case StageExperience:
		years := v.Years
		m.record.YearsOfExperience = &years
	case StagePosition:
		m.record.DesiredPositions = append([]string{}, v.List...)
	case StageLocation:
		m.record.Location = v.Text
	case StageTechStack:
		m.record.TechStack = append([]string{}, v.List...)
	case StageGreeting, StageQuestions, StageConclusion:
		return m.stage, fmt.Errorf("%w: %s", ErrStageMismatch, v.Stage)
	}

	m.stage = NextStage(m.stage)
	if p := FieldPrompt(m.stage); p != "" && m.stage.Collects() {
		m.say(p)
	}
	return m.stage, nil
}

// Clarify re-asks for the current field without advancing.
func (m *Machine) Clarify() {
	m.say(ClarificationPrompt(m.stage))
}

// SetQuestions installs the generated questions and asks the first one. An
// empty list leaves the machine waiting in the questions stage with a holding
// message instead.
func (m *Machine) SetQuestions(questions []string) bool {
	if m.stage != StageQuestions || len(m.questions) > 0 {
		return false
	}
	if len(questions) == 0 {
		m.say(QuestionsPending)
		return false
	}
	if len(questions) > QuestionCount {
		questions = questions[:QuestionCount]
	}

	m.questions = append([]string{}, questions...)
	m.questionIndex = 0
	m.say(QuestionsIntro(m.questions))
	return true
}

// CurrentQuestion returns the question awaiting an answer.
func (m *Machine) CurrentQuestion() (string, bool) {
	if m.stage != StageQuestions || m.questionIndex >= len(m.questions) {
		return "", false
	}
	return m.questions[m.questionIndex], true
}

// AdvanceQuestion records the feedback for the answered question (empty means
// nothing is shown) and moves the cursor. It reports true once every question
// has been answered.
func (m *Machine) AdvanceQuestion(feedback string) bool {
	if m.questionIndex >= len(m.questions) {
		return true
	}
	if feedback != "" {
		m.say(feedback)
	}

	m.questionIndex++
	if m.questionIndex < len(m.questions) {
		m.say(NextQuestionPrompt(m.questionIndex, m.questions[m.questionIndex]))
		return false
	}
	return true
}

// Conclude moves to the terminal stage and appends the summary. Only the first
// call has an effect; it reports whether this call concluded the interview.
func (m *Machine) Conclude() bool {
	if m.concluded {
		return false
	}
	m.concluded = true
	m.stage = StageConclusion
	m.say(Summary(&m.record))
	return true
}

// ObserveSentiment appends one polarity score.
func (m *Machine) ObserveSentiment(polarity float64) {
	m.sentiment = append(m.sentiment, polarity)
}

// SetLanguage stores the last detected language code.
func (m *Machine) SetLanguage(code string) {
	if code != "" {
		m.language = code
	}
}

func (m *Machine) Stage() Stage               { return m.stage }
func (m *Machine) Concluded() bool            { return m.concluded }
func (m *Machine) QuestionIndex() int         { return m.questionIndex }
func (m *Machine) Language() string           { return m.language }
func (m *Machine) Record() CandidateRecord    { return m.record.Clone() }
func (m *Machine) Questions() []string        { return append([]string{}, m.questions...) }
func (m *Machine) Messages() []Message        { return append([]Message{}, m.messages...) }
func (m *Machine) Transcript() []Message      { return append([]Message{}, m.transcript...) }
func (m *Machine) SentimentScores() []float64 { return append([]float64{}, m.sentiment...) }

// MessageCount is the length of the display log.
func (m *Machine) MessageCount() int { return len(m.messages) }
