// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and represent the heart of the application.
package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Messages are immutable once created;
// conversation order is significant.
type Message struct {
	// Role is the author of the message (user or assistant).
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// UserMessage constructs a user-authored message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage constructs an assistant-authored message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// LastMessage returns the final message of a history, or false for an empty one.
func LastMessage(history []Message) (Message, bool) {
	if len(history) == 0 {
		return Message{}, false
	}
	return history[len(history)-1], true
}

// UserTurns returns only the user-authored messages of a history, in order.
func UserTurns(history []Message) []Message {
	turns := make([]Message, 0, len(history))
	for _, msg := range history {
		if msg.Role == RoleUser {
			turns = append(turns, msg)
		}
	}
	return turns
}
