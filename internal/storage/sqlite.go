package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spigell/talentscout/internal/interview"
	"go.uber.org/zap"
)

//go:embed schema.sql
var sqliteSchema string

// SQLiteStore keeps candidates and transcripts in a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	now    func() time.Time
	logger *zap.Logger
}

// NewSQLiteStore opens (and creates) the database at path. ":memory:" is
// accepted for throwaway databases.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join("data", "talentscout.db")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Debug("sqlite store opened", zap.String("path", path))
	return &SQLiteStore{db: db, path: path, now: time.Now, logger: logger}, nil
}

// execWithRetry retries statements that fail only because another process
// holds the database lock.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

func (s *SQLiteStore) SaveCandidate(ctx context.Context, record interview.CandidateRecord) (string, error) {
	c := Anonymize(record, s.now())

	positions, err := json.Marshal(c.DesiredPositions)
	if err != nil {
		return "", fmt.Errorf("marshal positions: %w", err)
	}
	stack, err := json.Marshal(c.TechStack)
	if err != nil {
		return "", fmt.Errorf("marshal tech stack: %w", err)
	}

	var years sql.NullFloat64
	if c.YearsOfExperience != nil {
		years = sql.NullFloat64{Float64: *c.YearsOfExperience, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO candidates (candidate_id, created_at, years_of_experience, desired_positions, tech_stack, location)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.CandidateID, c.Timestamp, years, string(positions), string(stack), c.Location,
	)
	if err != nil {
		return "", fmt.Errorf("insert candidate: %w", err)
	}
	return c.CandidateID, nil
}

func (s *SQLiteStore) SaveTranscript(ctx context.Context, candidateID string, transcript []interview.Message) error {
	if transcript == nil {
		transcript = []interview.Message{}
	}
	data, err := json.Marshal(transcript)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (candidate_id, created_at, messages) VALUES (?, ?, ?)`,
		candidateID, s.now().UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Candidate(ctx context.Context, candidateID string) (Candidate, error) {
	var (
		c         Candidate
		years     sql.NullFloat64
		positions string
		stack     string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT candidate_id, created_at, years_of_experience, desired_positions, tech_stack, location
		 FROM candidates WHERE candidate_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		candidateID,
	).Scan(&c.CandidateID, &c.Timestamp, &years, &positions, &stack, &c.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("query candidate: %w", err)
	}

	if years.Valid {
		v := years.Float64
		c.YearsOfExperience = &v
	}
	if err := json.Unmarshal([]byte(positions), &c.DesiredPositions); err != nil {
		return Candidate{}, fmt.Errorf("decode positions: %w", err)
	}
	if err := json.Unmarshal([]byte(stack), &c.TechStack); err != nil {
		return Candidate{}, fmt.Errorf("decode tech stack: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) Transcript(ctx context.Context, candidateID string) ([]interview.Message, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT messages FROM transcripts WHERE candidate_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		candidateID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}

	var messages []interview.Message
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return messages, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
