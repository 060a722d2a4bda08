// Package ui provides colorized console output for the chat client:
// the startup banner, session info, prompts, assistant replies, and errors.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR DEFINITIONS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Badge colors
	errorBadge = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge  = color.New(color.FgCyan, color.Bold)

	// Text colors
	userText      = color.New(color.FgHiCyan, color.Bold)
	assistantText = color.New(color.FgHiGreen, color.Bold)
	errorText     = color.New(color.FgRed)
	mutedText     = color.New(color.FgHiBlack)
	accentText    = color.New(color.FgMagenta, color.Bold)
	successText   = color.New(color.FgGreen, color.Bold)
)

// Console renders the interactive conversation to a terminal.
// It satisfies the chat package's Console interface.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a Console writing to the given writer.
func NewConsoleWriter(out io.Writer) *Console {
	return &Console{out: out}
}

// Welcome prints the session opening instructions.
func (c *Console) Welcome() {
	fmt.Fprintln(c.out)
	successText.Fprint(c.out, "Welcome! ")
	fmt.Fprintln(c.out, "You can start your conversation.")
	mutedText.Fprintln(c.out, "To end the conversation, simply say 'thank you'.")
}

// Prompt prints the user input prompt.
func (c *Console) Prompt() {
	fmt.Fprintln(c.out)
	userText.Fprint(c.out, "You: ")
}

// Assistant prints a successful assistant reply followed by the continue hint.
func (c *Console) Assistant(text string) {
	assistantText.Fprint(c.out, "Assistant: ")
	fmt.Fprintln(c.out, text)
	mutedText.Fprintln(c.out, "(Continue asking questions or say 'thank you' to end the conversation)")
}

// TurnError prints a failed turn. The loop stays active afterwards.
func (c *Console) TurnError(err error) {
	errorBadge.Fprint(c.out, " ERROR ")
	fmt.Fprint(c.out, " ")
	errorText.Fprintln(c.out, err.Error())
	mutedText.Fprintln(c.out, "Please try again or say 'thank you' to end the conversation")
}

// Blank prints the rejection notice for empty input.
func (c *Console) Blank() {
	mutedText.Fprintln(c.out, "Nothing to send. Type a message, or say 'thank you' to end the conversation.")
}

// Goodbye prints the farewell on termination.
func (c *Console) Goodbye() {
	assistantText.Fprint(c.out, "Assistant: ")
	fmt.Fprintln(c.out, "You're welcome! Goodbye!")
}

// SessionInfo prints which backend the session is bound to.
func (c *Console) SessionInfo(provider, historyMode, maskedKey string) {
	infoBadge.Fprint(c.out, "[CHAT]")
	fmt.Fprint(c.out, " Provider: ")
	accentText.Fprint(c.out, provider)
	fmt.Fprint(c.out, " | History: ")
	accentText.Fprint(c.out, historyMode)
	if maskedKey != "" {
		fmt.Fprint(c.out, " | Key: ")
		mutedText.Fprint(c.out, maskedKey)
	}
	fmt.Fprintln(c.out)
}

// MaskKey returns a short masked version of an API key.
// Format: xxxx...xxxx
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
