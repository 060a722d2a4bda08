// Package domain contains the core business entities and value objects.
package domain

// ProviderType represents the type of AI backend (e.g., OpenAI, Gemini, Watson).
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGemini   ProviderType = "gemini"
	ProviderWatson   ProviderType = "watson"
	ProviderDeepAI   ProviderType = "deepai"
	ProviderClarifai ProviderType = "clarifai"
)

// AllProviders lists every supported backend, in menu order.
var AllProviders = []ProviderType{
	ProviderOpenAI,
	ProviderGemini,
	ProviderWatson,
	ProviderDeepAI,
	ProviderClarifai,
}

// IsValid reports whether the provider type is one of the supported backends.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderGemini, ProviderWatson, ProviderDeepAI, ProviderClarifai:
		return true
	default:
		return false
	}
}

// HistoryMode declares how much of the local conversation history a backend
// can consume per call. The session trims the outgoing history accordingly,
// so the replay policy is explicit rather than an accident of each adapter.
type HistoryMode string

const (
	// HistoryFull sends the entire conversation on every call.
	HistoryFull HistoryMode = "full-history"

	// HistoryUserTurns replays only user-role turns; assistant context is lost.
	HistoryUserTurns HistoryMode = "user-turns-only"

	// HistoryLastTurn sends only the most recent message.
	HistoryLastTurn HistoryMode = "last-turn-only"
)

// Trim reduces a history to the portion a backend with this mode consumes.
func (m HistoryMode) Trim(history []Message) []Message {
	switch m {
	case HistoryUserTurns:
		return UserTurns(history)
	case HistoryLastTurn:
		if last, ok := LastMessage(history); ok {
			return []Message{last}
		}
		return nil
	default:
		return history
	}
}

// Credentials is the per-backend credential bundle. It is assembled once at
// setup, held for the adapter's lifetime, and never mutated.
type Credentials struct {
	// APIKey authenticates against the backend. Required by every provider.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// AssistantID is the Watson assistant target. Watson only.
	AssistantID string `json:"assistant_id" mapstructure:"assistant_id"`

	// ServiceURL is the Watson service instance URL. Watson only.
	ServiceURL string `json:"service_url" mapstructure:"service_url"`

	// UserID, AppID and ModelID address a Clarifai model. Clarifai only.
	UserID  string `json:"user_id" mapstructure:"user_id"`
	AppID   string `json:"app_id" mapstructure:"app_id"`
	ModelID string `json:"model_id" mapstructure:"model_id"`
}
