package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. It is built once at startup
// and passed by reference to NewProvider.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string

	// APIKey is the credential for the selected provider.
	APIKey string

	// Endpoint optionally overrides the provider's base URL.
	Endpoint string

	// Model is a friendly name or a provider model ID. Empty selects the
	// provider default.
	Model string

	// Timeout bounds a single LLM call. Zero disables the bound.
	Timeout time.Duration
}

// defaultModels holds the model used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderGemini:     "gemini-flash-lite",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
	ProviderAnthropic:  "claude-haiku",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Timeout:  60 * time.Second,
	}
}

// ModelOrDefault returns the configured model or the provider default.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// keyEnvVars lists the conventional credential variables probed by
// DiscoverAPIKey, in priority order.
var keyEnvVars = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverAPIKey fills in a missing APIKey from the provider's conventional
// environment variable. When cfg.Provider is empty it probes every provider
// in priority order (Gemini → OpenAI → Anthropic → OpenRouter) and selects
// the first one whose key is set. Returns false if nothing was found.
func DiscoverAPIKey(cfg Config) (Config, bool) {
	if cfg.APIKey != "" {
		return cfg, true
	}
	for _, kv := range keyEnvVars {
		if cfg.Provider != "" && cfg.Provider != kv.provider {
			continue
		}
		if k := os.Getenv(kv.env); k != "" {
			cfg.Provider = kv.provider
			cfg.APIKey = k
			return cfg, true
		}
	}
	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set --api-key or SYNAPT_API_KEY)", c.Provider)
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("LLM timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
