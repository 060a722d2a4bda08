// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"sync"

	"github.com/hpn/hpn-chat/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Provider selects which backend the session talks to.
	Provider domain.ProviderType `json:"provider" mapstructure:"provider"`

	// Credentials is the credential bundle for the selected provider.
	Credentials domain.Credentials `json:"credentials" mapstructure:"credentials"`

	// Chat configuration
	Chat ChatConfig `json:"chat" mapstructure:"chat"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ChatConfig holds conversation loop configuration.
type ChatConfig struct {
	// TerminationPhrases end the session on a case-insensitive match.
	TerminationPhrases []string `json:"termination_phrases" mapstructure:"termination_phrases"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
// Returns an error if configuration loading fails.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a custom
// config path. Returns an error if configuration loading fails.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required
// fields are missing for the selected provider.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Provider == "" {
		validationErrors = append(validationErrors, "provider is required")
	} else if !c.Provider.IsValid() {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"provider '%s' is invalid, must be one of: openai, gemini, watson, deepai, clarifai",
			c.Provider,
		))
	}

	if c.Credentials.APIKey == "" {
		validationErrors = append(validationErrors, "credentials.api_key is required")
	}

	// Watson needs an assistant target and a service instance URL.
	if c.Provider == domain.ProviderWatson {
		if c.Credentials.AssistantID == "" {
			validationErrors = append(validationErrors, "credentials.assistant_id is required for watson")
		}
		if c.Credentials.ServiceURL == "" {
			validationErrors = append(validationErrors, "credentials.service_url is required for watson")
		}
	}

	// Clarifai addresses a model by user/app/model IDs.
	if c.Provider == domain.ProviderClarifai {
		if c.Credentials.UserID == "" {
			validationErrors = append(validationErrors, "credentials.user_id is required for clarifai")
		}
		if c.Credentials.AppID == "" {
			validationErrors = append(validationErrors, "credentials.app_id is required for clarifai")
		}
		if c.Credentials.ModelID == "" {
			validationErrors = append(validationErrors, "credentials.model_id is required for clarifai")
		}
	}

	if len(c.Chat.TerminationPhrases) == 0 {
		validationErrors = append(validationErrors, "chat.termination_phrases cannot be empty")
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
