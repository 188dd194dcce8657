// Package config maps the resume-mate.yaml file and environment onto the
// runtime settings the commands need.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/rewriting"
	"github.com/jonathan/resume-mate/internal/selection"
)

// Config is the application configuration, loaded from resume-mate.yaml
// with flag and environment overrides applied by viper.
type Config struct {
	Profile  string         `mapstructure:"profile"`
	Provider string         `mapstructure:"provider"`
	APIKey   string         `mapstructure:"api-key"`
	Models   *ModelsConfig  `mapstructure:"models"`
	Limits   *LimitsConfig  `mapstructure:"limits"`
	Rewrite  *RewriteConfig `mapstructure:"rewrite"`
}

// ModelsConfig overrides the per-tier model names of the provider.
type ModelsConfig struct {
	Lite     string `mapstructure:"lite"`
	Standard string `mapstructure:"standard"`
	Advanced string `mapstructure:"advanced"`
}

// LimitsConfig overrides the per-collection selection caps.
type LimitsConfig struct {
	Work      int `mapstructure:"work"`
	Projects  int `mapstructure:"projects"`
	Education int `mapstructure:"education"`
	Skills    int `mapstructure:"skills"`
}

// RewriteConfig tunes the rewrite stage.
type RewriteConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// FromViper unmarshals the current viper state into a Config.
func FromViper() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &config, nil
}

// ProfilePath returns the configured profile path or the default file name
// in the current directory.
func (c *Config) ProfilePath() string {
	if strings.TrimSpace(c.Profile) != "" {
		return c.Profile
	}
	return profile.DefaultFilename
}

// LLMConfig builds the provider configuration, applying model overrides.
func (c *Config) LLMConfig() *llm.Config {
	var cfg *llm.Config
	switch llm.Provider(strings.ToLower(strings.TrimSpace(c.Provider))) {
	case llm.ProviderAnthropic:
		cfg = llm.DefaultAnthropicConfig()
	case llm.ProviderGemini:
		cfg = llm.DefaultGeminiConfig()
	default:
		cfg = llm.DefaultConfig()
	}

	if c.Models != nil {
		for tier, model := range map[llm.ModelTier]string{
			llm.TierLite:     c.Models.Lite,
			llm.TierStandard: c.Models.Standard,
			llm.TierAdvanced: c.Models.Advanced,
		} {
			if strings.TrimSpace(model) != "" {
				cfg = cfg.WithModel(tier, model)
			}
		}
	}
	return cfg
}

// ResolveAPIKey returns the API key from config or the provider's
// conventional environment variable.
func (c *Config) ResolveAPIKey() string {
	if strings.TrimSpace(c.APIKey) != "" {
		return c.APIKey
	}

	switch llm.Provider(strings.ToLower(strings.TrimSpace(c.Provider))) {
	case llm.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

// SelectionLimits returns the configured caps, falling back to defaults
// for unset or non-positive values.
func (c *Config) SelectionLimits() selection.Limits {
	limits := selection.DefaultLimits()
	if c.Limits == nil {
		return limits
	}
	if c.Limits.Work > 0 {
		limits.MaxWork = c.Limits.Work
	}
	if c.Limits.Projects > 0 {
		limits.MaxProjects = c.Limits.Projects
	}
	if c.Limits.Education > 0 {
		limits.MaxEducation = c.Limits.Education
	}
	if c.Limits.Skills > 0 {
		limits.MaxSkills = c.Limits.Skills
	}
	return limits
}

// RewriteOptions returns the rewrite stage options with any configured
// concurrency override.
func (c *Config) RewriteOptions() rewriting.Options {
	opts := rewriting.DefaultOptions()
	if c.Rewrite != nil && c.Rewrite.Concurrency > 0 {
		opts.Concurrency = c.Rewrite.Concurrency
	}
	return opts
}
