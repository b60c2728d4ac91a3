package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new text-analysis provider based on configuration.
// An empty provider name disables analysis: the pipeline then runs every
// stage through its deterministic fallback path.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (analysis disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown text-analysis provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
