package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hpn/hpn-chat/internal/domain"
)

// newMockGeminiServer replies "reply N" to the Nth generateContent call and
// records the contents of every request.
func newMockGeminiServer(t *testing.T, requests *[]GeminiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			t.Error("request missing key query parameter")
		}

		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		*requests = append(*requests, req)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GeminiResponse{
			Candidates: []GeminiCandidate{
				{
					Content: GeminiContent{
						Role:  "model",
						Parts: []GeminiPart{{Text: fmt.Sprintf("reply %d", len(*requests))}},
					},
					FinishReason: "STOP",
				},
			},
		})
	}))
}

func TestGeminiAdapter_ReplaysOnlyUserTurns(t *testing.T) {
	var requests []GeminiRequest
	server := newMockGeminiServer(t, &requests)
	defer server.Close()

	a := NewGeminiAdapter("AIzaTest", WithBaseURL(server.URL))

	// The documented quirk: of [user:a, assistant:b, user:c] only "a" and
	// "c" are replayed into the fresh vendor session.
	history := []domain.Message{
		domain.UserMessage("a"),
		domain.AssistantMessage("b"),
		domain.UserMessage("c"),
	}

	reply, err := a.GetCompletion(context.Background(), history)
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}

	// One round-trip per user turn, reply to the last turn returned.
	if len(requests) != 2 {
		t.Fatalf("made %d generateContent calls, want 2", len(requests))
	}
	if reply != "reply 2" {
		t.Errorf("GetCompletion() = %q, want %q", reply, "reply 2")
	}

	// First call carries only the first user turn.
	first := requests[0].Contents
	if len(first) != 1 || first[0].Role != "user" || first[0].Parts[0].Text != "a" {
		t.Errorf("first call contents = %v, want single user turn 'a'", first)
	}

	// Second call carries [user a, model reply, user c]; the local
	// assistant turn "b" never appears.
	second := requests[1].Contents
	if len(second) != 3 {
		t.Fatalf("second call has %d contents, want 3", len(second))
	}
	if second[1].Role != "model" || second[1].Parts[0].Text != "reply 1" {
		t.Errorf("second call contents[1] = %v, want model 'reply 1'", second[1])
	}
	if second[2].Parts[0].Text != "c" {
		t.Errorf("second call contents[2] = %v, want user 'c'", second[2])
	}
	for _, content := range second {
		if content.Parts[0].Text == "b" {
			t.Error("local assistant turn 'b' was replayed into the session")
		}
	}
}

func TestGeminiAdapter_SingleUserMessage(t *testing.T) {
	var requests []GeminiRequest
	server := newMockGeminiServer(t, &requests)
	defer server.Close()

	a := NewGeminiAdapter("AIzaTest", WithBaseURL(server.URL))

	reply, err := a.GetCompletion(context.Background(), []domain.Message{domain.UserMessage("hello")})
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}
	if reply != "reply 1" {
		t.Errorf("GetCompletion() = %q, want %q", reply, "reply 1")
	}
	if len(requests) != 1 {
		t.Errorf("made %d calls, want 1", len(requests))
	}
}

func TestGeminiAdapter_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(GeminiErrorResponse{
			Error: GeminiErrorDetail{
				Code:    429,
				Message: "Resource has been exhausted (e.g. check quota).",
				Status:  "RESOURCE_EXHAUSTED",
			},
		})
	}))
	defer server.Close()

	a := NewGeminiAdapter("AIzaTest", WithBaseURL(server.URL))

	_, err := a.GetCompletion(context.Background(), []domain.Message{domain.UserMessage("hi")})
	if !IsAPIError(err) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}

	apiErr := err.(*APIError)
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if apiErr.Message != "Resource has been exhausted (e.g. check quota)." {
		t.Errorf("Message = %q, want vendor message", apiErr.Message)
	}
}

func TestGeminiAdapter_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GeminiResponse{})
	}))
	defer server.Close()

	a := NewGeminiAdapter("AIzaTest", WithBaseURL(server.URL))

	_, err := a.GetCompletion(context.Background(), []domain.Message{domain.UserMessage("hi")})
	if !IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestGeminiAdapter_EmptyHistory(t *testing.T) {
	a := NewGeminiAdapter("AIzaTest")
	if _, err := a.GetCompletion(context.Background(), nil); err != ErrEmptyHistory {
		t.Errorf("GetCompletion(nil) error = %v, want ErrEmptyHistory", err)
	}

	// Assistant-only history has nothing to replay either.
	history := []domain.Message{domain.AssistantMessage("b")}
	if _, err := a.GetCompletion(context.Background(), history); err != ErrEmptyHistory {
		t.Errorf("GetCompletion(assistant-only) error = %v, want ErrEmptyHistory", err)
	}
}

func TestGeminiAdapter_Metadata(t *testing.T) {
	a := NewGeminiAdapter("AIzaTest")
	if a.Name() != "gemini" {
		t.Errorf("Name() = %s, want gemini", a.Name())
	}
	if a.HistoryMode() != domain.HistoryUserTurns {
		t.Errorf("HistoryMode() = %s, want %s", a.HistoryMode(), domain.HistoryUserTurns)
	}
}
