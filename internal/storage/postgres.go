package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spigell/talentscout/internal/interview"
	"go.uber.org/zap"
)

//go:embed postgres.sql
var postgresSchema string

// PostgresStore keeps candidates and transcripts in PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	now    func() time.Time
	logger *zap.Logger
}

// NewPostgresStore connects to databaseURL and creates the tables if missing.
func NewPostgresStore(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres url is empty (set storage.postgres-url or DATABASE_URL)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{pool: pool, now: time.Now, logger: logger}, nil
}

func (s *PostgresStore) SaveCandidate(ctx context.Context, record interview.CandidateRecord) (string, error) {
	c := Anonymize(record, s.now())

	positions, err := json.Marshal(c.DesiredPositions)
	if err != nil {
		return "", fmt.Errorf("marshal positions: %w", err)
	}
	stack, err := json.Marshal(c.TechStack)
	if err != nil {
		return "", fmt.Errorf("marshal tech stack: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO candidates (candidate_id, created_at, years_of_experience, desired_positions, tech_stack, location)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.CandidateID, c.Timestamp, c.YearsOfExperience, positions, stack, c.Location,
	)
	if err != nil {
		return "", fmt.Errorf("insert candidate: %w", err)
	}
	return c.CandidateID, nil
}

func (s *PostgresStore) SaveTranscript(ctx context.Context, candidateID string, transcript []interview.Message) error {
	if transcript == nil {
		transcript = []interview.Message{}
	}
	data, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO transcripts (candidate_id, messages) VALUES ($1, $2)`,
		candidateID, data,
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}
	return nil
}

func (s *PostgresStore) Candidate(ctx context.Context, candidateID string) (Candidate, error) {
	var (
		c         Candidate
		positions []byte
		stack     []byte
	)

	err := s.pool.QueryRow(ctx,
		`SELECT candidate_id, created_at, years_of_experience, desired_positions, tech_stack, location
		 FROM candidates WHERE candidate_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		candidateID,
	).Scan(&c.CandidateID, &c.Timestamp, &c.YearsOfExperience, &positions, &stack, &c.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("query candidate: %w", err)
	}

	if err := json.Unmarshal(positions, &c.DesiredPositions); err != nil {
		return Candidate{}, fmt.Errorf("decode positions: %w", err)
	}
	if err := json.Unmarshal(stack, &c.TechStack); err != nil {
		return Candidate{}, fmt.Errorf("decode tech stack: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Transcript(ctx context.Context, candidateID string) ([]interview.Message, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT messages FROM transcripts WHERE candidate_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		candidateID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}

	var messages []interview.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return messages, nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
