package llm

import (
	"context"
	"fmt"

	"github.com/synapt/synapt/internal/store"
)

// mockSampleReply is served by the "mock" provider so the CLI and server can
// run end to end without credentials.
const mockSampleReply = "Here is your question:\n```json\n" + `{
  "question": "An array holds 5 integers. How many comparisons does a linear search make in the worst case?",
  "options": ["1", "4", "5", "25"],
  "answer": "5",
  "explanation": "Step 1: A linear search checks elements one by one. Step 2: In the worst case the target is last or absent. Step 3: All 5 elements are compared."
}` + "\n```"

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging and timeout middleware.
// eventRepo may be nil, in which case calls are only logged.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	model := cfg.ModelOrDefault()
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.APIKey, model, cfg.Endpoint)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.APIKey, model, cfg.Endpoint)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.APIKey, model, cfg.Endpoint)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.APIKey, model, cfg.Endpoint)
	case ProviderMock:
		mock := NewMockProvider()
		mock.SetFallback(MockResponse{Text: mockSampleReply})
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	return WithTimeout(logged, cfg.Timeout), nil
}
