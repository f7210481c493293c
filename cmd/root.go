package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "synapt",
	Short:         "LLM-backed exam question generator",
	Long:          "Synapt generates placement exam questions with an LLM and serves them over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("provider", "", "LLM provider (gemini, openai, openrouter, anthropic, mock); empty picks the first provider with a key in the environment")
	f.String("api-key", "", "API key for the LLM provider")
	f.String("endpoint", "", "Override the provider base URL")
	f.String("model", "", "Model name or provider model ID (empty selects the provider default)")
	f.Duration("llm-timeout", time.Minute, "Timeout for a single LLM call")
	f.Int("max-tokens", 0, "Token budget for the LLM reply (0 keeps the provider default)")
	f.Float64("temperature", 0, "Sampling temperature (0 keeps the provider default)")
	f.Bool("json-mode", false, "Ask providers with a native JSON mode to use it")
	f.String("events-db", "", "SQLite file for the LLM request log (empty disables it)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)

	// Bare `synapt` serves.
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
}
