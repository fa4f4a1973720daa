package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/spigell/talentscout/internal/interview"
	"go.uber.org/zap"
)

const (
	fileTimestampLayout = "20060102_150405"
	lockFileName        = ".talentscout.lock"
)

// FileStore writes one JSON document per save into a directory:
// candidate_<id>_<ts>.json and interview_<id>_<ts>.json.
type FileStore struct {
	dir    string
	lock   *flock.Flock
	now    func() time.Time
	logger *zap.Logger
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileStore{
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, lockFileName)),
		now:    time.Now,
		logger: logger,
	}, nil
}

func (s *FileStore) SaveCandidate(_ context.Context, record interview.CandidateRecord) (string, error) {
	c := Anonymize(record, s.now())
	name := fmt.Sprintf("candidate_%s_%s.json", c.CandidateID, c.Timestamp.Format(fileTimestampLayout))

	if err := s.writeJSON(name, c); err != nil {
		return "", fmt.Errorf("save candidate: %w", err)
	}

	s.logger.Debug("candidate saved", zap.String("file", name))
	return c.CandidateID, nil
}

func (s *FileStore) SaveTranscript(_ context.Context, candidateID string, transcript []interview.Message) error {
	name := fmt.Sprintf("interview_%s_%s.json", candidateID, s.now().UTC().Format(fileTimestampLayout))

	if transcript == nil {
		transcript = []interview.Message{}
	}
	if err := s.writeJSON(name, transcript); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	s.logger.Debug("transcript saved", zap.String("file", name))
	return nil
}

// Candidate returns the latest saved candidate document for candidateID.
func (s *FileStore) Candidate(_ context.Context, candidateID string) (Candidate, error) {
	var c Candidate
	if err := s.readLatest("candidate_"+candidateID+"_*.json", &c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

// Transcript returns the latest saved transcript for candidateID.
func (s *FileStore) Transcript(_ context.Context, candidateID string) ([]interview.Message, error) {
	var messages []interview.Message
	if err := s.readLatest("interview_"+candidateID+"_*.json", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire lock on %s: %w", s.dir, err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("releasing data directory lock", zap.Error(err))
		}
	}()

	return atomicWrite(filepath.Join(s.dir, name), data)
}

func (s *FileStore) readLatest(pattern string, v any) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return fmt.Errorf("list %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return ErrNotFound
	}
	// The timestamp suffix sorts chronologically.
	sort.Strings(matches)

	data, err := os.ReadFile(matches[len(matches)-1])
	if err != nil {
		return fmt.Errorf("read %s: %w", matches[len(matches)-1], err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", matches[len(matches)-1], err)
	}
	return nil
}

// atomicWrite writes through a temp file in the same directory and renames it
// over path, so readers never see a partial document.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}
