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

// WatsonAPIVersion is the Assistant v2 API version date sent on every call.
const WatsonAPIVersion = "2021-11-27"

// WatsonAdapter implements AIProvider for IBM Watson Assistant v2.
//
// The backend is stateful on the server side: every call creates a brand-new
// session, sends only the most recent message into it, and returns the first
// generic text response. Earlier turns are ignored entirely.
type WatsonAdapter struct {
	apiKey      string
	assistantID string
	serviceURL  string
	httpClient  *http.Client
}

// NewWatsonAdapter creates a new WatsonAdapter for the given assistant.
// serviceURL is the Watson service instance URL (region-specific).
func NewWatsonAdapter(apiKey, assistantID, serviceURL string, opts ...Option) *WatsonAdapter {
	c := newClientConfig(serviceURL, opts...)

	return &WatsonAdapter{
		apiKey:      apiKey,
		assistantID: assistantID,
		serviceURL:  c.baseURL,
		httpClient:  c.httpClient,
	}
}

// Name returns the provider identifier.
func (w *WatsonAdapter) Name() string {
	return "watson"
}

// HistoryMode reports that this backend consumes only the last message.
func (w *WatsonAdapter) HistoryMode() domain.HistoryMode {
	return domain.HistoryLastTurn
}

// GetCompletion creates a fresh assistant session, sends the last message,
// and returns the assistant's text reply.
func (w *WatsonAdapter) GetCompletion(ctx context.Context, history []domain.Message) (string, error) {
	last, ok := domain.LastMessage(history)
	if !ok {
		return "", ErrEmptyHistory
	}

	sessionID, err := w.createSession(ctx)
	if err != nil {
		return "", err
	}

	return w.message(ctx, sessionID, last.Content)
}

// createSession opens a new server-side session and returns its ID.
func (w *WatsonAdapter) createSession(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/v2/assistants/%s/sessions?version=%s",
		w.serviceURL, w.assistantID, WatsonAPIVersion)

	respBody, err := w.post(ctx, url, nil)
	if err != nil {
		return "", err
	}

	var session watsonSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", &MalformedResponseError{Provider: w.Name(), Reason: "session response is not valid JSON"}
	}
	if session.SessionID == "" {
		return "", &MalformedResponseError{Provider: w.Name(), Reason: "session response has no session_id"}
	}

	return session.SessionID, nil
}

// message sends one input text into a session and returns the reply text.
func (w *WatsonAdapter) message(ctx context.Context, sessionID, text string) (string, error) {
	url := fmt.Sprintf("%s/v2/assistants/%s/sessions/%s/message?version=%s",
		w.serviceURL, w.assistantID, sessionID, WatsonAPIVersion)

	body, err := json.Marshal(watsonMessageRequest{
		Input: watsonMessageInput{Text: text},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal watson request: %w", err)
	}

	respBody, err := w.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var msg watsonMessageResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return "", &MalformedResponseError{Provider: w.Name(), Reason: "message response is not valid JSON"}
	}
	if len(msg.Output.Generic) == 0 {
		return "", &MalformedResponseError{Provider: w.Name(), Reason: "message response has no generic output"}
	}

	return msg.Output.Generic[0].Text, nil
}

// post performs an authenticated POST and returns the body of a 2xx response.
// Authentication is basic auth with the literal username "apikey", the REST
// equivalent of the SDK's IAM authenticator.
func (w *WatsonAdapter) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.SetBasicAuth("apikey", w.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Provider: w.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Provider: w.Name(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Provider: w.Name(), StatusCode: resp.StatusCode}
		var watsonErr watsonErrorResponse
		if err := json.Unmarshal(respBody, &watsonErr); err == nil && watsonErr.Error != "" {
			apiErr.Message = watsonErr.Error
		} else {
			apiErr.Message = string(respBody)
		}
		return nil, apiErr
	}

	return respBody, nil
}

// ============================================================================
// Watson Assistant v2 API Types
// ============================================================================

type watsonSessionResponse struct {
	SessionID string `json:"session_id"`
}

type watsonMessageRequest struct {
	Input watsonMessageInput `json:"input"`
}

type watsonMessageInput struct {
	Text string `json:"text"`
}

type watsonMessageResponse struct {
	Output watsonMessageOutput `json:"output"`
}

type watsonMessageOutput struct {
	Generic []watsonGenericResponse `json:"generic"`
}

type watsonGenericResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

type watsonErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
