package chat

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hpn/hpn-chat/internal/domain"
)

// stubProvider is a configurable in-memory AIProvider for tests. It records
// the history slice each GetCompletion call receives.
type stubProvider struct {
	name     string
	mode     domain.HistoryMode
	reply    string
	err      error
	received [][]domain.Message
}

func (s *stubProvider) GetCompletion(_ context.Context, history []domain.Message) (string, error) {
	snapshot := make([]domain.Message, len(history))
	copy(snapshot, history)
	s.received = append(s.received, snapshot)

	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Name() string                    { return s.name }
func (s *stubProvider) HistoryMode() domain.HistoryMode { return s.mode }

func TestSession_TurnGrowsHistoryByTwo(t *testing.T) {
	provider := &stubProvider{name: "stub", mode: domain.HistoryFull, reply: "canned"}
	session := NewSession(provider)

	reply, err := session.Turn(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if reply != "canned" {
		t.Errorf("Turn() = %q, want %q", reply, "canned")
	}

	want := []domain.Message{
		domain.UserMessage("hello"),
		domain.AssistantMessage("canned"),
	}
	if !reflect.DeepEqual(session.History(), want) {
		t.Errorf("History() = %v, want %v", session.History(), want)
	}

	// A second turn grows the history by exactly two more, in order.
	if _, err := session.Turn(context.Background(), "again"); err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	history := session.History()
	if len(history) != 4 {
		t.Fatalf("len(History()) = %d, want 4", len(history))
	}
	if history[2].Role != domain.RoleUser || history[3].Role != domain.RoleAssistant {
		t.Errorf("turn order broken: %v", history[2:])
	}
}

func TestSession_FailedTurnKeepsUserMessage(t *testing.T) {
	provider := &stubProvider{name: "stub", mode: domain.HistoryFull, err: errors.New("boom")}
	session := NewSession(provider)

	if _, err := session.Turn(context.Background(), "hello"); err == nil {
		t.Fatal("Turn() expected error")
	}

	// The user message stays appended, no assistant message, no rollback.
	want := []domain.Message{domain.UserMessage("hello")}
	if !reflect.DeepEqual(session.History(), want) {
		t.Errorf("History() after failure = %v, want %v", session.History(), want)
	}

	// The session stays usable.
	provider.err = nil
	provider.reply = "recovered"
	if _, err := session.Turn(context.Background(), "retry"); err != nil {
		t.Fatalf("Turn() after failure error = %v", err)
	}
	if len(session.History()) != 3 {
		t.Errorf("len(History()) = %d, want 3", len(session.History()))
	}
}

func TestSession_TrimsOutgoingHistoryPerMode(t *testing.T) {
	tests := []struct {
		name string
		mode domain.HistoryMode
		want []domain.Message
	}{
		{
			name: "full history providers see everything",
			mode: domain.HistoryFull,
			want: []domain.Message{
				domain.UserMessage("a"),
				domain.AssistantMessage("r"),
				domain.UserMessage("b"),
			},
		},
		{
			name: "user-turn providers see only user messages",
			mode: domain.HistoryUserTurns,
			want: []domain.Message{
				domain.UserMessage("a"),
				domain.UserMessage("b"),
			},
		},
		{
			name: "last-turn providers see only the newest message",
			mode: domain.HistoryLastTurn,
			want: []domain.Message{
				domain.UserMessage("b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{name: "stub", mode: tt.mode, reply: "r"}
			session := NewSession(provider)

			if _, err := session.Turn(context.Background(), "a"); err != nil {
				t.Fatalf("Turn() error = %v", err)
			}
			if _, err := session.Turn(context.Background(), "b"); err != nil {
				t.Fatalf("Turn() error = %v", err)
			}

			got := provider.received[len(provider.received)-1]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outgoing history = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_HistoryReturnsCopy(t *testing.T) {
	provider := &stubProvider{name: "stub", mode: domain.HistoryFull, reply: "r"}
	session := NewSession(provider)

	if _, err := session.Turn(context.Background(), "a"); err != nil {
		t.Fatalf("Turn() error = %v", err)
	}

	history := session.History()
	history[0] = domain.UserMessage("mutated")

	if session.History()[0].Content != "a" {
		t.Error("History() returned a mutable reference to internal state")
	}
}
