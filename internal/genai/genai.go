// Package genai provides the GenAI directive provider using the OpenAI API.
//
// The consultation agent composes a prompt describing the current turn and
// asks the model for an action directive ("<ActionName>: key=value, ...").
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ClientInterface defines the interface for generating action directives.
// It exists so the agent and API layers can be tested with scripted clients.
type ClientInterface interface {
	GenerateDirective(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey string
	Model  string
}

// Option configures the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key, overriding the environment variable.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel sets the chat model used for directive generation.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// Client wraps the OpenAI chat completion service for directive generation.
type Client struct {
	client openai.Client
	model  openai.ChatModel
}

// NewClient initializes a GenAI client. The API key falls back to the
// OPENAI_API_KEY environment variable when not set via options.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		slog.Error("genai.NewClient: no API key configured")
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	model := openai.ChatModel(cfg.Model)
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	slog.Debug("genai.NewClient: client initialized", "model", model)
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// GenerateDirective asks the model for the next action directive given the
// composed consultation prompt.
func (c *Client) GenerateDirective(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	slog.Debug("genai.GenerateDirective: requesting completion", "model", c.model, "promptLength", len(userPrompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		slog.Error("genai.GenerateDirective: chat completion failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		slog.Error("genai.GenerateDirective: no choices returned")
		return "", fmt.Errorf("no choices returned")
	}

	directive := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("genai.GenerateDirective: directive received", "directive", directive)
	return directive, nil
}
