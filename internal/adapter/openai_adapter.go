// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"context"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hpn/hpn-chat/internal/domain"
)

// DefaultOpenAIModel is the chat model used for completions.
const DefaultOpenAIModel = "gpt-4o-mini-2024-07-18"

// OpenAIAdapter implements AIProvider for the OpenAI chat completion API.
// It is the only backend that carries the full conversation on every call.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates a new OpenAIAdapter with the given API key.
func NewOpenAIAdapter(apiKey string, opts ...Option) *OpenAIAdapter {
	c := newClientConfig("", opts...)

	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = c.httpClient
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}

	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultOpenAIModel,
	}
}

// Name returns the provider identifier.
func (o *OpenAIAdapter) Name() string {
	return "openai"
}

// HistoryMode reports that this backend consumes the entire history.
func (o *OpenAIAdapter) HistoryMode() domain.HistoryMode {
	return domain.HistoryFull
}

// GetCompletion sends the full conversation and returns the assistant reply.
// Decoding is deterministic (temperature 0).
func (o *OpenAIAdapter) GetCompletion(ctx context.Context, history []domain.Message) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
		// go-openai drops a literal zero temperature via omitempty; the
		// smallest positive value is the library's way to request it.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", o.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &MalformedResponseError{Provider: o.Name(), Reason: "no choices in completion"}
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapError converts go-openai errors into the adapter error taxonomy.
func (o *OpenAIAdapter) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider:   o.Name(),
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{
			Provider:   o.Name(),
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}

	return &APIError{Provider: o.Name(), Err: err}
}
