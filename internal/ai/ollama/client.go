package ollama

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/utils"
)

const (
	DefaultURL     = "http://localhost:11434"
	DefaultModel   = "mistral"
	DefaultTimeout = 60 * time.Second

	generatePath = "/api/generate"
	contentType  = "application/json"
	userAgent    = "spigell/talentscout"
	maxLogLength = 200
)

// Client talks to a local Ollama server.
type Client struct {
	HTTPClient *http.Client
	URL        string
	UserAgent  string

	model  string
	logger *zap.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func New(url, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if url = strings.TrimRight(strings.TrimSpace(url), "/"); url == "" {
		url = DefaultURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		URL:        url,
		UserAgent:  userAgent,
		model:      model,
		logger:     logger,
	}
}

// Generate runs a non-streaming completion.
func (c *Client) Generate(ctx context.Context, req ai.Request) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.SystemMessage,
		Stream: false,
		Options: generateOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq = c.setHeaders(httpReq)

	resp, err := c.request(httpReq)
	if err != nil {
		return "", fmt.Errorf("cannot connect to ollama at %s: %w", c.URL, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return "", fmt.Errorf("bad status: %s: %s", resp.Status, decoded.Error)
		}
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	output := strings.TrimSpace(decoded.Response)
	if output == "" {
		return "", errors.New("ollama returned empty response")
	}

	c.logger.Debug("got response from ollama",
		zap.String("response_preview", utils.TruncateForLog(output, maxLogLength)),
	)

	return output, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()), zap.String("model", c.model))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}
