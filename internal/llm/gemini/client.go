package gemini

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"google.golang.org/genai"

	"elevate-backend/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client implements llm.Client on the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create gemini client")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model}, nil
}

// Complete sends one generateContent call with the system instruction set.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.User}}}}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", mapError(err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", &llm.ProviderError{Provider: c.Provider(), Err: llm.ErrEmptyResponse}
	}
	return text, nil
}

// Provider returns "gemini".
func (c *Client) Provider() string { return "gemini" }

func mapError(err error) error {
	pe := &llm.ProviderError{Provider: "gemini", Err: pkgerrors.Wrap(err, "generate content")}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		pe.StatusCode = apiErr.Code
	}
	return pe
}
