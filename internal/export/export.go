// Package export renders an interview as the downloadable JSON document.
// The document never carries the candidate's email or phone.
package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/talentscout/internal/interview"
	"github.com/spigell/talentscout/internal/storage"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schema string

var schemaLoader = gojsonschema.NewStringLoader(schema)

// redactedKeys are removed from candidate_data.
var redactedKeys = []string{"email", "phone"}

// Document is the export format.
type Document struct {
	Timestamp     string              `json:"timestamp"`
	CandidateData map[string]any      `json:"candidate_data"`
	Conversation  []interview.Message `json:"conversation"`
}

// Build assembles the export of a live interview.
func Build(record interview.CandidateRecord, transcript []interview.Message, now time.Time) (*Document, error) {
	data, err := candidateMap(record)
	if err != nil {
		return nil, err
	}
	return newDocument(data, transcript, now), nil
}

// FromStored assembles the export of a stored interview. Stored candidates are
// already anonymized, so only the candidate id is added.
func FromStored(c storage.Candidate, transcript []interview.Message, now time.Time) (*Document, error) {
	data, err := candidateMap(interview.CandidateRecord{
		YearsOfExperience: c.YearsOfExperience,
		DesiredPositions:  c.DesiredPositions,
		Location:          c.Location,
		TechStack:         c.TechStack,
	})
	if err != nil {
		return nil, err
	}
	data["candidate_id"] = c.CandidateID
	return newDocument(data, transcript, now), nil
}

func newDocument(data map[string]any, transcript []interview.Message, now time.Time) *Document {
	conversation := append([]interview.Message{}, transcript...)
	return &Document{
		Timestamp:     now.Format(time.RFC3339),
		CandidateData: data,
		Conversation:  conversation,
	}
}

func candidateMap(record interview.CandidateRecord) (map[string]any, error) {
	out := map[string]any{}
	if err := mapstructure.Decode(record.Clone(), &out); err != nil {
		return nil, fmt.Errorf("convert candidate record: %w", err)
	}
	for _, key := range redactedKeys {
		delete(out, key)
	}
	return out, nil
}

// Marshal renders doc as indented JSON and checks it against the export schema.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks a serialized document against the export schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate export: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return errors.New("invalid export document: " + strings.Join(problems, "; "))
}

// FileName is the download name for an export created at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("interview_%s.json", now.Format("20060102_150405"))
}

// WriteFile writes doc into dir and returns the path.
func WriteFile(dir string, doc *Document, now time.Time) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
