package chat

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// State tracks where the interactive loop is in its lifecycle.
type State string

const (
	// StateAwaitingSetup means the loop exists but has not started running.
	StateAwaitingSetup State = "awaiting_provider_setup"

	// StateActive means the loop is reading turns.
	StateActive State = "active"

	// StateEnded means the session is over; the loop will not read again.
	StateEnded State = "ended"
)

// TerminationPhrases end the session when the user input matches one of them
// case-insensitively (after trimming surrounding whitespace).
var TerminationPhrases = []string{"thank you", "thanks"}

// IsTermination reports whether the input ends the conversation, using the
// default phrase set.
func IsTermination(input string) bool {
	return matchesTermination(input, TerminationPhrases)
}

func matchesTermination(input string, phrases []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, phrase := range phrases {
		if normalized == strings.ToLower(phrase) {
			return true
		}
	}
	return false
}

// Console renders loop output. The ui package provides the colorized
// implementation; tests substitute a recorder.
type Console interface {
	// Welcome prints the session opening instructions.
	Welcome()

	// Prompt prints the user input prompt.
	Prompt()

	// Assistant prints a successful assistant reply.
	Assistant(text string)

	// TurnError prints a failed turn. The session stays active afterwards.
	TurnError(err error)

	// Blank prints the rejection notice for empty input.
	Blank()

	// Goodbye prints the farewell on termination.
	Goodbye()
}

// Loop is the interactive conversation loop. It reads lines from an input
// stream, feeds them through the session one turn at a time, and renders the
// results. Everything is synchronous and blocking.
type Loop struct {
	session *Session
	in      io.Reader
	console Console
	phrases []string
	state   State
}

// LoopOption is a functional option for configuring a Loop.
type LoopOption func(*Loop)

// WithTerminationPhrases overrides the default termination phrase set.
func WithTerminationPhrases(phrases []string) LoopOption {
	return func(l *Loop) {
		if len(phrases) > 0 {
			l.phrases = phrases
		}
	}
}

// NewLoop creates a Loop over the given session, input stream, and console.
func NewLoop(session *Session, in io.Reader, console Console, opts ...LoopOption) *Loop {
	l := &Loop{
		session: session,
		in:      in,
		console: console,
		phrases: TerminationPhrases,
		state:   StateAwaitingSetup,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the loop's current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Run drives the conversation until a termination phrase, end of input, or
// context cancellation. Failed turns are displayed and the loop continues;
// the only error Run itself returns is a context or input-stream failure.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateActive
	defer func() { l.state = StateEnded }()

	l.console.Welcome()

	scanner := bufio.NewScanner(l.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.console.Prompt()

		if !scanner.Scan() {
			// End of input closes the session like a termination phrase.
			return scanner.Err()
		}

		input := scanner.Text()

		// Whitespace-only input is rejected locally: nothing is appended to
		// the history and no provider call is made.
		if strings.TrimSpace(input) == "" {
			l.console.Blank()
			continue
		}

		if matchesTermination(input, l.phrases) {
			l.console.Goodbye()
			return nil
		}

		reply, err := l.session.Turn(ctx, input)
		if err != nil {
			l.console.TurnError(err)
			continue
		}

		l.console.Assistant(reply)
	}
}
