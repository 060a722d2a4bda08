// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hpn/hpn-chat/internal/domain"
)

// DefaultDeepAIBaseURL is the default DeepAI API endpoint.
const DefaultDeepAIBaseURL = "https://api.deepai.org"

// DeepAIAdapter implements AIProvider for the DeepAI text generator.
//
// The backend is single-shot: only the most recent message is sent, as a
// form-encoded text field; there is no notion of a conversation.
type DeepAIAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewDeepAIAdapter creates a new DeepAIAdapter with the given API key.
func NewDeepAIAdapter(apiKey string, opts ...Option) *DeepAIAdapter {
	c := newClientConfig(DefaultDeepAIBaseURL, opts...)

	return &DeepAIAdapter{
		apiKey:     apiKey,
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
	}
}

// Name returns the provider identifier.
func (d *DeepAIAdapter) Name() string {
	return "deepai"
}

// HistoryMode reports that this backend consumes only the last message.
func (d *DeepAIAdapter) HistoryMode() domain.HistoryMode {
	return domain.HistoryLastTurn
}

// GetCompletion sends the last message to the text generator endpoint and
// returns the generated output.
func (d *DeepAIAdapter) GetCompletion(ctx context.Context, history []domain.Message) (string, error) {
	last, ok := domain.LastMessage(history)
	if !ok {
		return "", ErrEmptyHistory
	}

	form := url.Values{}
	form.Set("text", last.Content)

	endpoint := d.baseURL + "/api/text-generator"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("api-key", d.apiKey)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return "", &APIError{Provider: d.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Provider: d.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: d.Name(), StatusCode: resp.StatusCode}
		var deepAIErr deepAIErrorResponse
		if err := json.Unmarshal(respBody, &deepAIErr); err == nil && deepAIErr.Err != "" {
			apiErr.Message = deepAIErr.Err
		} else {
			apiErr.Message = string(respBody)
		}
		return "", apiErr
	}

	var generated deepAIResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", &MalformedResponseError{Provider: d.Name(), Reason: "response is not valid JSON"}
	}
	if generated.Output == "" {
		return "", &MalformedResponseError{Provider: d.Name(), Reason: "response has no output field"}
	}

	return generated.Output, nil
}

// ============================================================================
// DeepAI API Types
// ============================================================================

type deepAIResponse struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

type deepAIErrorResponse struct {
	Err string `json:"err"`
}
