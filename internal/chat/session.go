// Package chat implements the conversation session and the interactive loop
// that drives it. A session owns the in-memory history for one run; nothing
// is persisted.
package chat

import (
	"context"
	"log/slog"

	"github.com/hpn/hpn-chat/internal/adapter"
	"github.com/hpn/hpn-chat/internal/domain"
)

// Session accumulates conversation turns and executes them against one
// provider adapter. It is single-threaded: one turn is in flight at a time,
// and the history grows monotonically for the lifetime of the session.
type Session struct {
	provider adapter.AIProvider
	logger   *slog.Logger
	history  []domain.Message
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session bound to one provider adapter for its lifetime.
func NewSession(provider adapter.AIProvider, opts ...SessionOption) *Session {
	s := &Session{
		provider: provider,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Provider returns the adapter this session is bound to.
func (s *Session) Provider() adapter.AIProvider {
	return s.provider
}

// History returns a copy of the conversation history so far.
func (s *Session) History() []domain.Message {
	history := make([]domain.Message, len(s.history))
	copy(history, s.history)
	return history
}

// Turn executes one conversation turn: the user input is appended to the
// history, the history is trimmed to what the provider's HistoryMode can
// consume, and the provider is called once.
//
// On success the assistant reply is appended and returned, so the history
// grows by exactly two messages per successful turn. On failure the user
// message stays appended with no assistant message and no rollback; the
// session remains usable.
func (s *Session) Turn(ctx context.Context, input string) (string, error) {
	s.history = append(s.history, domain.UserMessage(input))

	outgoing := s.provider.HistoryMode().Trim(s.history)

	s.logger.Debug("executing turn",
		slog.String("provider", s.provider.Name()),
		slog.String("history_mode", string(s.provider.HistoryMode())),
		slog.Int("history_len", len(s.history)),
		slog.Int("outgoing_len", len(outgoing)),
	)

	reply, err := s.provider.GetCompletion(ctx, outgoing)
	if err != nil {
		s.logger.Warn("turn failed",
			slog.String("provider", s.provider.Name()),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	s.history = append(s.history, domain.AssistantMessage(reply))

	s.logger.Info("turn completed",
		slog.String("provider", s.provider.Name()),
		slog.Int("history_len", len(s.history)),
	)

	return reply, nil
}
