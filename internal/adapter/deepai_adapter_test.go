package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hpn/hpn-chat/internal/domain"
)

func TestDeepAIAdapter_GetCompletion(t *testing.T) {
	var gotText, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/text-generator" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotText = r.PostFormValue("text")
		gotKey = r.Header.Get("api-key")

		json.NewEncoder(w).Encode(deepAIResponse{ID: "gen-1", Output: "generated text"})
	}))
	defer server.Close()

	a := NewDeepAIAdapter("deepai-key", WithBaseURL(server.URL))

	history := []domain.Message{
		domain.UserMessage("ignored"),
		domain.AssistantMessage("also ignored"),
		domain.UserMessage("generate this"),
	}

	reply, err := a.GetCompletion(context.Background(), history)
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}
	if reply != "generated text" {
		t.Errorf("GetCompletion() = %q, want %q", reply, "generated text")
	}

	// Only the last message goes out, as a flat form field.
	if gotText != "generate this" {
		t.Errorf("sent text = %q, want %q", gotText, "generate this")
	}
	if gotKey != "deepai-key" {
		t.Errorf("api-key header = %q, want %q", gotKey, "deepai-key")
	}
}

func TestDeepAIAdapter_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(deepAIErrorResponse{Err: "Invalid api-key"})
	}))
	defer server.Close()

	a := NewDeepAIAdapter("bad-key", WithBaseURL(server.URL))

	_, err := a.GetCompletion(context.Background(), []domain.Message{domain.UserMessage("hi")})
	if !IsAPIError(err) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr := err.(*APIError); apiErr.Message != "Invalid api-key" {
		t.Errorf("Message = %q, want vendor message", apiErr.Message)
	}
}

func TestDeepAIAdapter_MissingOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "gen-1"})
	}))
	defer server.Close()

	a := NewDeepAIAdapter("deepai-key", WithBaseURL(server.URL))

	_, err := a.GetCompletion(context.Background(), []domain.Message{domain.UserMessage("hi")})
	if !IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestDeepAIAdapter_Metadata(t *testing.T) {
	a := NewDeepAIAdapter("deepai-key")
	if a.Name() != "deepai" {
		t.Errorf("Name() = %s, want deepai", a.Name())
	}
	if a.HistoryMode() != domain.HistoryLastTurn {
		t.Errorf("HistoryMode() = %s, want %s", a.HistoryMode(), domain.HistoryLastTurn)
	}
}
