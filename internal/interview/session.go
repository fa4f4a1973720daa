package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/extract"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/utils"
	"go.uber.org/zap"
)

// ErrSessionClosed is returned for input submitted after the conclusion.
var ErrSessionClosed = errors.New("interview session is closed")

const (
	questionsTemperature  = 0.8
	evaluationTemperature = 0.6

	defaultMaxTokens        = 500
	defaultTimeout          = 60 * time.Second
	defaultQuestionAttempts = 3

	maxLogLength = 200
)

// Store persists a finished interview. SaveCandidate returns the opaque id the
// transcript is stored under.
type Store interface {
	SaveCandidate(ctx context.Context, record CandidateRecord) (string, error)
	SaveTranscript(ctx context.Context, candidateID string, transcript []Message) error
}

// LanguageDetector returns a language code for candidate input.
type LanguageDetector interface {
	Detect(text string) string
}

// SentimentScorer returns a polarity in [-1, 1] for candidate input.
type SentimentScorer interface {
	Polarity(text string) float64
}

// Deps are the collaborators of a session. Any of them may be nil.
type Deps struct {
	Generator ai.Generator
	Store     Store
	Language  LanguageDetector
	Sentiment SentimentScorer
	Logger    *zap.Logger
}

// Options tune a session. Zero values fall back to defaults.
type Options struct {
	ExitPolicy       ExitPolicy
	MaxTokens        int
	Timeout          time.Duration
	QuestionAttempts int
}

func (o Options) withDefaults() Options {
	if o.ExitPolicy == "" {
		o.ExitPolicy = ExitExact
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.QuestionAttempts <= 0 {
		o.QuestionAttempts = defaultQuestionAttempts
	}
	return o
}

// Session drives one interview end to end. It processes one input at a time
// and is not safe for concurrent use; run one Session per candidate.
type Session struct {
	id      string
	machine *Machine
	deps    Deps
	opts    Options
	logger  *zap.Logger

	questionAttempts int
	candidateID      string
	persisted        bool
	closed           bool
}

// NewSession returns a session at the greeting stage.
func NewSession(deps Deps, opts Options) *Session {
	id := uuid.NewString()

	return &Session{
		id:      id,
		machine: NewMachine(),
		deps:    deps,
		opts:    opts.withDefaults(),
		logger:  logger.ForSession(deps.Logger, id),
	}
}

// Start emits the greeting. Calling it again has no effect.
func (s *Session) Start() []Message {
	before := s.machine.MessageCount()
	if s.machine.Start() {
		s.logger.Info("interview started")
	}
	return s.since(before)
}

// Submit processes one candidate input and returns the messages it produced.
func (s *Session) Submit(ctx context.Context, raw string) ([]Message, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	before := s.machine.MessageCount()
	s.Start()

	if s.opts.ExitPolicy.ShouldExit(raw) {
		s.logger.Info("exit requested", zap.String(logger.FieldStage, s.machine.Stage().String()))
		if text := SanitizeInput(raw); text != "" {
			s.machine.AddUser(text)
		}
		s.conclude(ctx)
		return s.since(before), nil
	}

	text := SanitizeInput(raw)
	if text == "" {
		return s.since(before), nil
	}

	s.machine.AddUser(text)
	s.observe(text)

	stage := s.machine.Stage()
	switch stage {
	case StageName, StageEmail, StagePhone, StageExperience, StagePosition, StageLocation, StageTechStack:
		s.collect(ctx, stage, text)
	case StageQuestions:
		s.answer(ctx, text)
	case StageGreeting, StageConclusion:
		return s.since(before), fmt.Errorf("%w: unexpected stage %s", ErrStageMismatch, stage)
	}

	return s.since(before), nil
}

// End concludes the interview if it is still running and returns the summary
// messages. It is safe to call more than once.
func (s *Session) End(ctx context.Context) []Message {
	before := s.machine.MessageCount()
	if !s.closed {
		s.conclude(ctx)
	}
	return s.since(before)
}

func (s *Session) collect(ctx context.Context, stage Stage, text string) {
	value, ok := ValidateField(stage, text)
	if !ok {
		s.logger.Debug("clarification requested", zap.String(logger.FieldStage, stage.String()))
		s.machine.Clarify()
		return
	}

	if stage == StageEmail && !LooksLikeEmail(value.Text) {
		s.logger.Warn("email does not look valid, accepting as is")
	}

	next, err := s.machine.Apply(value)
	if err != nil {
		s.logger.Error("applying field", zap.Error(err))
		return
	}

	s.logger.Debug("stage changed",
		zap.String("stage_from", stage.String()),
		zap.String("stage_to", next.String()),
	)

	if next == StageQuestions {
		s.generateQuestions(ctx)
	}
}

func (s *Session) generateQuestions(ctx context.Context) {
	s.questionAttempts++

	record := s.machine.Record()
	completion := s.complete(ctx, QuestionsPrompt(record.TechStack, record.Years()), questionsTemperature)

	var questions []string
	if ai.IsSentinel(completion) {
		s.machine.AddAssistant(completion)
	} else {
		questions = extract.Questions(completion)
	}

	s.logger.Debug("questions extracted",
		zap.Int("count", len(questions)),
		zap.Int("attempt", s.questionAttempts),
	)

	if len(questions) == 0 && s.questionAttempts >= s.opts.QuestionAttempts {
		s.logger.Warn("giving up on question generation", zap.Int("attempts", s.questionAttempts))
		s.conclude(ctx)
		return
	}

	s.machine.SetQuestions(questions)
}

func (s *Session) answer(ctx context.Context, text string) {
	question, ok := s.machine.CurrentQuestion()
	if !ok {
		s.generateQuestions(ctx)
		return
	}

	record := s.machine.Record()
	completion := s.complete(ctx,
		EvaluationPrompt(question, text, record.PrimaryTech(), record.Years()),
		evaluationTemperature,
	)

	feedback := completion
	if !ai.IsSentinel(completion) {
		feedback = extract.Feedback(completion)
	}

	if s.machine.AdvanceQuestion(feedback) {
		s.conclude(ctx)
	}
}

func (s *Session) complete(ctx context.Context, prompt string, temperature float64) string {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	s.logger.Debug("llm request", zap.String("prompt", utils.TruncateForLog(prompt, maxLogLength)))

	completion := ai.Complete(callCtx, s.deps.Generator, ai.Request{
		Prompt:        prompt,
		SystemMessage: SystemPrompt,
		Temperature:   temperature,
		MaxTokens:     s.opts.MaxTokens,
	})

	s.logger.Debug("llm response", zap.String("completion", utils.TruncateForLog(completion, maxLogLength)))
	return completion
}

// conclude appends the summary once and persists the interview once. The
// summary is in both logs before the store is called.
func (s *Session) conclude(ctx context.Context) {
	s.closed = true
	if !s.machine.Conclude() {
		return
	}

	s.logger.Info("interview concluded",
		zap.Int("questions_answered", s.machine.QuestionIndex()),
		zap.Int("messages", s.machine.MessageCount()),
	)
	s.persist(ctx)
}

func (s *Session) persist(ctx context.Context) {
	if s.persisted || s.deps.Store == nil {
		return
	}
	s.persisted = true

	id, err := s.deps.Store.SaveCandidate(ctx, s.machine.Record())
	if err != nil {
		s.logger.Error("saving candidate", zap.Error(err))
		return
	}
	s.candidateID = id

	if err := s.deps.Store.SaveTranscript(ctx, id, s.machine.Transcript()); err != nil {
		s.logger.Error("saving transcript", zap.Error(err), zap.String("candidate_id", id))
		return
	}

	s.logger.Info("interview saved", zap.String("candidate_id", id))
}

// observe feeds auxiliary telemetry. Nothing here may affect the interview.
func (s *Session) observe(text string) {
	if s.deps.Language != nil {
		s.guard("language detection", func() {
			s.machine.SetLanguage(s.deps.Language.Detect(text))
		})
	}

	if s.deps.Sentiment != nil {
		polarity := 0.0
		s.guard("sentiment scoring", func() {
			polarity = s.deps.Sentiment.Polarity(text)
		})
		s.machine.ObserveSentiment(polarity)
	}
}

func (s *Session) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug(name+" failed", zap.Any("panic", r))
		}
	}()
	fn()
}

func (s *Session) since(before int) []Message {
	messages := s.machine.Messages()
	if before >= len(messages) {
		return nil
	}
	return messages[before:]
}

// ID is the session identity used in logs.
func (s *Session) ID() string { return s.id }

// Active reports whether the session still accepts input.
func (s *Session) Active() bool { return !s.closed }

// CandidateID is the id returned by the store, empty until saved.
func (s *Session) CandidateID() string { return s.candidateID }

func (s *Session) Stage() Stage               { return s.machine.Stage() }
func (s *Session) Record() CandidateRecord    { return s.machine.Record() }
func (s *Session) Messages() []Message        { return s.machine.Messages() }
func (s *Session) Transcript() []Message      { return s.machine.Transcript() }
func (s *Session) Questions() []string        { return s.machine.Questions() }
func (s *Session) QuestionIndex() int         { return s.machine.QuestionIndex() }
func (s *Session) Language() string           { return s.machine.Language() }
func (s *Session) SentimentScores() []float64 { return s.machine.SentimentScores() }

// Progress is the completion percentage of the current stage.
func (s *Session) Progress() int { return s.machine.Stage().Progress() }
