package llm

import (
	"context"
	"errors"
)

// Request is one single-turn completion.
type Request struct {
	// Operation names the call site for logs and metrics, e.g. "quiz.generate".
	Operation   string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Client abstracts AI text providers. Implementations make exactly one
// provider call per Complete and never retry.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is used when no provider key is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	return "", ErrNotConfigured
}

// Provider returns "none".
func (PlaceholderClient) Provider() string { return "none" }
