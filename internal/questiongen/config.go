package questiongen

import "github.com/synapt/synapt/internal/jsonextract"

// Config controls the behavior of the Service.
type Config struct {
	// Strategies is the ordered extraction chain run on the reply text.
	Strategies []jsonextract.Strategy

	// Validators run in order on every recovered question; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response. Zero leaves the
	// provider default.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Zero leaves
	// the provider default.
	Temperature float64

	// JSONOutput asks providers with a native JSON mode to use it.
	JSONOutput bool

	// Purpose labels calls in the LLM request log.
	Purpose string
}

// DefaultConfig returns a Config with the standard extraction chain and the
// schema validator. Token budget and temperature stay at the provider
// defaults.
func DefaultConfig() Config {
	return Config{
		Strategies: jsonextract.DefaultStrategies(),
		Validators: []Validator{
			&SchemaValidator{},
		},
		Purpose: "question-gen",
	}
}
