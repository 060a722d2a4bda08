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

// DefaultClarifaiBaseURL is the default Clarifai API endpoint.
const DefaultClarifaiBaseURL = "https://api.clarifai.com"

// ClarifaiAdapter implements AIProvider for the Clarifai model outputs API.
//
// The backend is single-shot: only the most recent message is sent, wrapped
// in the inputs[].data.text.raw envelope, and the first output's raw text
// is returned.
type ClarifaiAdapter struct {
	apiKey     string
	userID     string
	appID      string
	modelID    string
	baseURL    string
	httpClient *http.Client
}

// NewClarifaiAdapter creates a new ClarifaiAdapter addressing one model.
func NewClarifaiAdapter(apiKey, userID, appID, modelID string, opts ...Option) *ClarifaiAdapter {
	c := newClientConfig(DefaultClarifaiBaseURL, opts...)

	return &ClarifaiAdapter{
		apiKey:     apiKey,
		userID:     userID,
		appID:      appID,
		modelID:    modelID,
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
	}
}

// Name returns the provider identifier.
func (c *ClarifaiAdapter) Name() string {
	return "clarifai"
}

// HistoryMode reports that this backend consumes only the last message.
func (c *ClarifaiAdapter) HistoryMode() domain.HistoryMode {
	return domain.HistoryLastTurn
}

// GetCompletion sends the last message through the model outputs endpoint and
// returns the first output's raw text.
func (c *ClarifaiAdapter) GetCompletion(ctx context.Context, history []domain.Message) (string, error) {
	last, ok := domain.LastMessage(history)
	if !ok {
		return "", ErrEmptyHistory
	}

	body, err := json.Marshal(clarifaiRequest{
		Inputs: []clarifaiInput{
			{Data: clarifaiData{Text: &clarifaiText{Raw: last.Content}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal clarifai request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/users/%s/apps/%s/models/%s/outputs",
		c.baseURL, c.userID, c.appID, c.modelID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Key "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &APIError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Provider: c.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: c.Name(), StatusCode: resp.StatusCode}
		var clarifaiErr clarifaiResponse
		if err := json.Unmarshal(respBody, &clarifaiErr); err == nil && clarifaiErr.Status.Description != "" {
			apiErr.Message = clarifaiErr.Status.Description
		} else {
			apiErr.Message = string(respBody)
		}
		return "", apiErr
	}

	var outputs clarifaiResponse
	if err := json.Unmarshal(respBody, &outputs); err != nil {
		return "", &MalformedResponseError{Provider: c.Name(), Reason: "response is not valid JSON"}
	}
	if len(outputs.Outputs) == 0 {
		return "", &MalformedResponseError{Provider: c.Name(), Reason: "response has no outputs"}
	}
	if outputs.Outputs[0].Data.Text == nil {
		return "", &MalformedResponseError{Provider: c.Name(), Reason: "output has no text data"}
	}

	return outputs.Outputs[0].Data.Text.Raw, nil
}

// ============================================================================
// Clarifai API Types
// ============================================================================

type clarifaiRequest struct {
	Inputs []clarifaiInput `json:"inputs"`
}

type clarifaiInput struct {
	Data clarifaiData `json:"data"`
}

type clarifaiData struct {
	Text *clarifaiText `json:"text,omitempty"`
}

type clarifaiText struct {
	Raw string `json:"raw"`
}

type clarifaiResponse struct {
	Status  clarifaiStatus   `json:"status"`
	Outputs []clarifaiOutput `json:"outputs"`
}

type clarifaiStatus struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type clarifaiOutput struct {
	Data clarifaiData `json:"data"`
}
