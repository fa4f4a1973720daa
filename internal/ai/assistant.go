package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned by backends that cannot serve requests at all.
var ErrUnavailable = errors.New("language model provider is unavailable")

// UnavailableMessage is shown in place of a completion when no provider is configured.
const UnavailableMessage = "I'm currently unable to process your request. Please ensure the LLM provider is configured correctly."

const sentinelPrefix = "Error generating response: "

// Request is a single free-text completion request.
type Request struct {
	Prompt        string
	SystemMessage string
	Temperature   float64
	MaxTokens     int
}

// Generator produces a completion for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Complete calls gen and never fails: transport and provider errors come back
// as a sentinel string the caller can show to the candidate as is.
func Complete(ctx context.Context, gen Generator, req Request) string {
	if gen == nil {
		return UnavailableMessage
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return UnavailableMessage
		}
		return sentinelPrefix + err.Error()
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return sentinelPrefix + "empty completion"
	}
	return out
}

// IsSentinel reports whether text is a failure marker rather than model output.
// Backends that report failures in-band with an "Error:" prefix are covered too.
func IsSentinel(text string) bool {
	text = strings.TrimSpace(text)
	return text == UnavailableMessage ||
		strings.HasPrefix(text, sentinelPrefix) ||
		strings.HasPrefix(text, "Error:")
}

// Unavailable is the backend used when no provider is configured.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, Request) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}
