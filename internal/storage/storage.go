// Package storage persists finished interviews without the candidate's direct
// identifiers. Name, email and phone never reach a store.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/talentscout/internal/interview"
	"go.uber.org/zap"
)

// ErrNotFound is returned when nothing is stored under a candidate id.
var ErrNotFound = errors.New("candidate not found")

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Candidate is the anonymized form of interview.CandidateRecord.
type Candidate struct {
	CandidateID       string    `json:"candidate_id"`
	Timestamp         time.Time `json:"timestamp"`
	YearsOfExperience *float64  `json:"years_of_experience"`
	DesiredPositions  []string  `json:"desired_positions"`
	TechStack         []string  `json:"tech_stack"`
	Location          string    `json:"location,omitempty"`
}

// Store saves interviews and reads them back by candidate id.
type Store interface {
	interview.Store
	Candidate(ctx context.Context, candidateID string) (Candidate, error)
	Transcript(ctx context.Context, candidateID string) ([]interview.Message, error)
	Close() error
}

// Config selects and configures a Store.
type Config struct {
	Driver      string
	Dir         string
	SQLitePath  string
	PostgresURL string
}

// CandidateID derives the opaque id for email: the first 16 hex characters of
// its SHA-256, upper-cased. The address is trimmed and lower-cased first.
func CandidateID(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:16])
}

// Anonymize drops name, email and phone from record.
func Anonymize(record interview.CandidateRecord, now time.Time) Candidate {
	record = record.Clone()

	c := Candidate{
		CandidateID:       CandidateID(record.Email),
		Timestamp:         now.UTC(),
		YearsOfExperience: record.YearsOfExperience,
		DesiredPositions:  record.DesiredPositions,
		TechStack:         record.TechStack,
		Location:          record.Location,
	}
	if c.DesiredPositions == nil {
		c.DesiredPositions = []string{}
	}
	if c.TechStack == nil {
		c.TechStack = []string{}
	}
	return c
}

// Open builds the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("storage_driver", cfg.Driver))

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverFile:
		return NewFileStore(cfg.Dir, logger)
	case DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case DriverPostgres:
		return NewPostgresStore(ctx, cfg.PostgresURL, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
