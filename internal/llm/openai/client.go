package openai

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"elevate-backend/internal/llm"
)

const defaultModel = "gpt-4o-mini"

// Client implements llm.Client using OpenAI Chat Completions.
// BaseURL allows OpenAI-compatible gateways.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete sends one chat completion with a system and a user message.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.User})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	})
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &llm.ProviderError{Provider: c.Provider(), Err: llm.ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

// Provider returns "openai".
func (c *Client) Provider() string { return "openai" }

func mapError(err error) error {
	pe := &llm.ProviderError{Provider: "openai", Err: pkgerrors.Wrap(err, "create chat completion")}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		pe.StatusCode = apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		pe.StatusCode = reqErr.HTTPStatusCode
	}
	return pe
}
