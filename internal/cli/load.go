package cli

import (
	"fmt"
	"os"

	"github.com/pkarpov/claimsift/internal/model"
	"github.com/spf13/viper"
)

// loadConfig merges defaults, the config file and environment variables into
// a validated configuration.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	// API keys come from the provider-native environment variables when the
	// config file carries none.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	if cfg.SMTP.Password == "" {
		cfg.SMTP.Password = os.Getenv("CLAIMSIFT_SMTP_PASSWORD")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
