package llm

import "os"

// Provider identifies an LLM backend.
type Provider string

const (
	// ProviderGemini uses Google Gemini via the generative-ai SDK.
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI uses the OpenAI chat completions API.
	ProviderOpenAI Provider = "openai"
)

// ModelTier selects a model by capability/cost tradeoff rather than by name.
type ModelTier string

const (
	// TierStandard is the default tier for drafting full emails.
	TierStandard ModelTier = "standard"
	// TierLite is a cheaper, faster tier for lighter edits.
	TierLite ModelTier = "lite"
)

// Config holds the LLM provider selection and per-tier model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature applies to every call; drafting works best with a low value.
	Temperature float32
}

// DefaultConfig returns the configuration used when none is supplied. The
// provider can be overridden with the LLM_PROVIDER environment variable.
func DefaultConfig() *Config {
	provider := ProviderGemini
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		provider = Provider(p)
	}

	switch provider {
	case ProviderOpenAI:
		return &Config{
			Provider: ProviderOpenAI,
			Models: map[ModelTier]string{
				TierStandard: "gpt-4o",
				TierLite:     "gpt-4o-mini",
			},
			Temperature: 0.2,
		}
	default:
		return &Config{
			Provider: ProviderGemini,
			Models: map[ModelTier]string{
				TierStandard: "gemini-1.5-pro",
				TierLite:     "gemini-1.5-flash",
			},
			Temperature: 0.2,
		}
	}
}

// GetModel returns the model name configured for a tier, or "" if the tier is
// not configured.
func (c *Config) GetModel(tier ModelTier) string {
	return c.Models[tier]
}
