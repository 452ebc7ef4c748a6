// Package llm wraps the Gemini API behind a small client interface used by the
// optional style classifier.
package llm

import "os"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short classification prompts
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over longer inputs
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// EnvModelOverride names the environment variable that replaces the lite model
const EnvModelOverride = "RESUME_TAILOR_LLM_MODEL"

// Config holds the model configuration
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// ConfigFromEnv returns the default configuration with the lite model
// replaced by RESUME_TAILOR_LLM_MODEL when it is set.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv(EnvModelOverride); model != "" {
		cfg = cfg.WithModel(TierLite, model)
	}
	return cfg
}

// GetModel returns the model name for a given tier, falling back to
// standard and then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
