// Package config provides configuration management using the Singleton pattern.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/hpn/hpn-chat/internal/domain"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "HPN_CHAT"

	// EnvAPIKey is the primary environment variable for the API key.
	// It takes priority over file configuration so keys stay out of files.
	EnvAPIKey = "HPN_CHAT_API_KEY"
)

// credentialEnvVars maps environment variables onto credential fields.
// Environment always wins over file values.
var credentialEnvVars = map[string]func(*domain.Credentials, string){
	EnvAPIKey:                func(c *domain.Credentials, v string) { c.APIKey = v },
	"HPN_CHAT_ASSISTANT_ID":  func(c *domain.Credentials, v string) { c.AssistantID = v },
	"HPN_CHAT_SERVICE_URL":   func(c *domain.Credentials, v string) { c.ServiceURL = v },
	"HPN_CHAT_USER_ID":       func(c *domain.Credentials, v string) { c.UserID = v },
	"HPN_CHAT_APP_ID":        func(c *domain.Credentials, v string) { c.AppID = v },
	"HPN_CHAT_MODEL_ID":      func(c *domain.Credentials, v string) { c.ModelID = v },
}

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
// 1. Credential env vars (HPN_CHAT_API_KEY and friends)
// 2. Environment variables (prefixed with HPN_CHAT_)
// 3. config.yaml
// 4. Default values
func loadConfig(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.hpn-chat")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		// Config file not found is fine, env vars can carry everything.
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	loadCredentialsFromEnv(&cfg)

	if provider := os.Getenv(envPrefix + "_PROVIDER"); provider != "" {
		cfg.Provider = domain.ProviderType(strings.ToLower(strings.TrimSpace(provider)))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Chat defaults
	v.SetDefault("chat.termination_phrases", []string{"thank you", "thanks"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// loadCredentialsFromEnv overlays credential fields from environment
// variables. Environment values replace any file-based values so secrets
// never have to live in config.yaml.
func loadCredentialsFromEnv(cfg *Configuration) {
	for env, set := range credentialEnvVars {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			set(&cfg.Credentials, value)
		}
	}
}
