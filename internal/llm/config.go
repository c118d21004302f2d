// Package llm provides LLM configuration and a provider-neutral client used to
// write lead review summaries and sales pitches.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap tasks
	TierLite ModelTier = "lite"
	// TierStandard is for lead analysis and pitches
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form output
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider converts a provider name to a Provider. Empty means Anthropic.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case "", ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", name)
	}
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL   string
	MaxTokens int
}

// DefaultMaxTokens bounds the length of a generated analysis.
const DefaultMaxTokens = 1024

// DefaultConfig returns the default configuration (Anthropic)
func DefaultConfig() *Config {
	return DefaultClaudeConfig()
}

// ConfigFor returns the default configuration for a provider.
func ConfigFor(p Provider) *Config {
	switch p {
	case ProviderGemini:
		return DefaultGeminiConfig()
	case ProviderOpenAI:
		return DefaultOpenAIConfig()
	default:
		return DefaultClaudeConfig()
	}
}

// DefaultClaudeConfig returns the default Anthropic configuration
func DefaultClaudeConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierLite:     "claude-haiku-4-5",
			TierStandard: "claude-sonnet-4-5-20250929",
			TierAdvanced: "claude-opus-4-1",
		},
		MaxTokens: DefaultMaxTokens,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		MaxTokens: DefaultMaxTokens,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o",
			TierAdvanced: "gpt-4.1",
		},
		MaxTokens: DefaultMaxTokens,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

func (c *Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}
