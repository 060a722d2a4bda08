// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"fmt"

	"github.com/hpn/hpn-chat/internal/domain"
)

// New constructs the adapter for the given provider type from its credential
// bundle. The credential bundle is assumed to be validated already; New only
// dispatches. Unknown provider types are an error, never a silent default.
func New(provider domain.ProviderType, creds domain.Credentials, opts ...Option) (AIProvider, error) {
	switch provider {
	case domain.ProviderOpenAI:
		return NewOpenAIAdapter(creds.APIKey, opts...), nil
	case domain.ProviderGemini:
		return NewGeminiAdapter(creds.APIKey, opts...), nil
	case domain.ProviderWatson:
		return NewWatsonAdapter(creds.APIKey, creds.AssistantID, creds.ServiceURL, opts...), nil
	case domain.ProviderDeepAI:
		return NewDeepAIAdapter(creds.APIKey, opts...), nil
	case domain.ProviderClarifai:
		return NewClarifaiAdapter(creds.APIKey, creds.UserID, creds.AppID, creds.ModelID, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", provider)
	}
}
