package ollama

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
)

func TestGenerateSendsOptions(t *testing.T) {
	t.Parallel()

	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, generatePath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "  1. What is a pod?  "})
	}))
	defer srv.Close()

	c := New(srv.URL, "llama3", time.Second, zap.NewNop())
	out, err := c.Generate(context.Background(), ai.Request{
		Prompt:        "questions",
		SystemMessage: "system",
		Temperature:   0.6,
		MaxTokens:     300,
	})
	require.NoError(t, err)

	assert.Equal(t, "1. What is a pod?", out)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "questions", got.Prompt)
	assert.Equal(t, "system", got.System)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.6, got.Options.Temperature, 1e-9)
	assert.Equal(t, 300, got.Options.NumPredict)
}

func TestGenerateDecodesGzip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_ = json.NewEncoder(gz).Encode(generateResponse{Response: "compressed"})
		_ = gz.Close()
	}))
	defer srv.Close()

	out, err := New(srv.URL, "", time.Second, nil).Generate(context.Background(), ai.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "compressed", out)
}

func TestGenerateBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(generateResponse{Error: "model 'nope' not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "nope", time.Second, nil).Generate(context.Background(), ai.Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model 'nope' not found")
}

func TestGenerateUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, "", time.Second, nil).Generate(context.Background(), ai.Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot connect to ollama")
}

func TestGenerateEmptyResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "  "})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", time.Second, nil).Generate(context.Background(), ai.Request{Prompt: "p"})
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	c := New(" ", " ", 0, nil)
	assert.Equal(t, DefaultURL, c.URL)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)
}
