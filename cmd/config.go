package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synapt/synapt/internal/llm"
	"github.com/synapt/synapt/internal/logging"
	"github.com/synapt/synapt/internal/questiongen"
	"github.com/synapt/synapt/internal/store"
)

// viperForCmd binds a command's flags, SYNAPT_* environment variables and
// an optional synapt.yaml to a fresh viper instance. Flags win over the
// environment, which wins over the config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.InheritedFlags())

	v.SetEnvPrefix("SYNAPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("synapt")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/synapt")
	v.AddConfigPath("/etc/synapt")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.WithError(err).Warn("error reading config file")
		}
	} else {
		logrus.WithField("path", v.ConfigFileUsed()).Debug("loaded config file")
	}

	return v
}

func setupLogging(cmd *cobra.Command, v *viper.Viper) error {
	return logging.Setup(v.GetString("log-level"), v.GetString("log-format"), cmd.ErrOrStderr())
}

// buildLLMConfig assembles the provider configuration. An empty API key is
// looked up in the provider's conventional environment variable.
func buildLLMConfig(v *viper.Viper) (llm.Config, error) {
	cfg := llm.DefaultConfig()
	cfg.Provider = strings.ToLower(strings.TrimSpace(v.GetString("provider")))
	cfg.APIKey = v.GetString("api-key")
	cfg.Endpoint = v.GetString("endpoint")
	cfg.Model = v.GetString("model")
	cfg.Timeout = v.GetDuration("llm-timeout")

	if cfg.Provider != llm.ProviderMock {
		var found bool
		cfg, found = llm.DiscoverAPIKey(cfg)
		if !found && cfg.Provider == "" {
			cfg.Provider = llm.ProviderGemini
		}
	}
	if err := cfg.Validate(); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}

// openEventRepo opens the LLM request log when --events-db is set. The
// returned close func is never nil.
func openEventRepo(v *viper.Viper) (store.EventRepo, func() error, error) {
	path := v.GetString("events-db")
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create events directory: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open events database: %w", err)
	}
	return s.EventRepo(), s.Close, nil
}

// newService wires provider, request log and service configuration.
func newService(ctx context.Context, v *viper.Viper, purpose string) (*questiongen.Service, func() error, error) {
	llmCfg, err := buildLLMConfig(v)
	if err != nil {
		return nil, nil, err
	}

	repo, closeRepo, err := openEventRepo(v)
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		_ = closeRepo()
		return nil, nil, err
	}

	cfg := questiongen.DefaultConfig()
	cfg.MaxTokens = v.GetInt("max-tokens")
	cfg.Temperature = v.GetFloat64("temperature")
	cfg.JSONOutput = v.GetBool("json-mode")
	cfg.Purpose = purpose

	logrus.WithFields(logrus.Fields{
		"provider": llmCfg.Provider,
		"model":    provider.ModelID(),
		"events":   repo != nil,
	}).Debug("LLM provider ready")

	return questiongen.New(provider, cfg), closeRepo, nil
}

// addRequestFlags registers the question request flags shared by generate
// and prompt.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("topic", "t", "", "Question topic")
	f.String("skill-tags", "", "Comma separated skill tags")
	f.String("type", "", "Question type (default mcq)")
	f.StringP("difficulty", "d", "", "Difficulty (default medium)")
	f.StringP("section", "s", "", "Exam section (data_interpretation, logical_reasoning, programming, technical, aptitude)")
	f.StringP("language", "l", "", "Programming language for programming questions")
}

func requestFromViper(v *viper.Viper) questiongen.Request {
	return questiongen.Request{
		Topic:               v.GetString("topic"),
		SkillTags:           v.GetString("skill-tags"),
		QuestionType:        v.GetString("type"),
		Difficulty:          v.GetString("difficulty"),
		Section:             v.GetString("section"),
		ProgrammingLanguage: v.GetString("language"),
	}
}
