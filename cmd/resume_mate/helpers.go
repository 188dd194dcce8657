package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-mate/internal/config"
	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/logging"
)

// loadConfig builds the application config and logger from viper state.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.FromViper()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return cfg, logger, nil
}

// newLLMClient builds the provider client from config, failing early when
// no API key can be resolved.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured (set GEMINI_API_KEY or ANTHROPIC_API_KEY, or api-key in %s.yaml)", app)
	}
	return llm.NewClient(ctx, cfg.LLMConfig(), apiKey)
}
