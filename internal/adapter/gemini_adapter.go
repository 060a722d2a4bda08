// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hpn/hpn-chat/internal/domain"
)

const (
	// DefaultGeminiBaseURL is the default Gemini API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultGeminiModel is the generative model used for chat sessions.
	DefaultGeminiModel = "gemini-pro"
)

// GeminiAdapter implements AIProvider for the Google Gemini API.
//
// The backend is conversational: every call starts a fresh chat session and
// replays the user-role turns of the local history into it, one
// generateContent round-trip per turn. The model's own replies accumulate
// into the outgoing contents; locally stored assistant turns are not sent.
// The reply to the final user turn is returned.
type GeminiAdapter struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiAdapter creates a new GeminiAdapter with the given API key.
func NewGeminiAdapter(apiKey string, opts ...Option) *GeminiAdapter {
	c := newClientConfig(DefaultGeminiBaseURL, opts...)

	return &GeminiAdapter{
		apiKey:     apiKey,
		baseURL:    c.baseURL,
		model:      DefaultGeminiModel,
		httpClient: c.httpClient,
	}
}

// Name returns the provider identifier.
func (g *GeminiAdapter) Name() string {
	return "gemini"
}

// HistoryMode reports that this backend replays only user-role turns.
func (g *GeminiAdapter) HistoryMode() domain.HistoryMode {
	return domain.HistoryUserTurns
}

// GetCompletion replays the user turns into a fresh chat session and returns
// the model's reply to the last one.
func (g *GeminiAdapter) GetCompletion(ctx context.Context, history []domain.Message) (string, error) {
	userTurns := domain.UserTurns(history)
	if len(userTurns) == 0 {
		return "", ErrEmptyHistory
	}

	contents := make([]GeminiContent, 0, 2*len(userTurns))
	var lastReply string

	for _, turn := range userTurns {
		contents = append(contents, GeminiContent{
			Role:  "user",
			Parts: []GeminiPart{{Text: turn.Content}},
		})

		reply, err := g.generateContent(ctx, contents)
		if err != nil {
			return "", err
		}

		contents = append(contents, GeminiContent{
			Role:  "model",
			Parts: []GeminiPart{{Text: reply}},
		})
		lastReply = reply
	}

	return lastReply, nil
}

// generateContent performs one generateContent round-trip and returns the
// first candidate's text.
func (g *GeminiAdapter) generateContent(ctx context.Context, contents []GeminiContent) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	body, err := json.Marshal(GeminiRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &APIError{Provider: g.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Provider: g.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: g.Name(), StatusCode: resp.StatusCode}
		var geminiErr GeminiErrorResponse
		if err := json.Unmarshal(respBody, &geminiErr); err == nil && geminiErr.Error.Message != "" {
			apiErr.Message = geminiErr.Error.Message
		} else {
			apiErr.Message = string(respBody)
		}
		return "", apiErr
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", &MalformedResponseError{Provider: g.Name(), Reason: "response is not valid JSON"}
	}

	if len(geminiResp.Candidates) == 0 {
		return "", &MalformedResponseError{Provider: g.Name(), Reason: "no candidates in response"}
	}
	if len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedResponseError{Provider: g.Name(), Reason: "candidate has no content parts"}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// ============================================================================
// Gemini API Types
// ============================================================================

// GeminiRequest represents a Gemini generateContent request.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiContent represents a content block in Gemini format.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of a content block.
type GeminiPart struct {
	Text string `json:"text,omitempty"`
}

// GeminiResponse represents a Gemini generateContent response.
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiCandidate represents a single generated candidate.
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
	Index        int           `json:"index"`
}

// GeminiErrorResponse represents an error response from the Gemini API.
type GeminiErrorResponse struct {
	Error GeminiErrorDetail `json:"error"`
}

// GeminiErrorDetail contains error details.
type GeminiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
