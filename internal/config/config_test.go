package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/profile"
)

func TestProfilePathDefaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, profile.DefaultFilename, c.ProfilePath())

	c.Profile = "custom/profile.yaml"
	assert.Equal(t, "custom/profile.yaml", c.ProfilePath())
}

func TestLLMConfigProviderSelection(t *testing.T) {
	assert.Equal(t, llm.ProviderGemini, (&Config{}).LLMConfig().Provider)
	assert.Equal(t, llm.ProviderGemini, (&Config{Provider: "gemini"}).LLMConfig().Provider)
	assert.Equal(t, llm.ProviderAnthropic, (&Config{Provider: "Anthropic"}).LLMConfig().Provider)
}

func TestLLMConfigModelOverrides(t *testing.T) {
	c := &Config{
		Models: &ModelsConfig{Advanced: "gemini-exp"},
	}

	cfg := c.LLMConfig()

	assert.Equal(t, "gemini-exp", cfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(llm.TierStandard))
}

func TestResolveAPIKeyPrefersConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	assert.Equal(t, "cfg-key", (&Config{APIKey: "cfg-key"}).ResolveAPIKey())
	assert.Equal(t, "env-key", (&Config{}).ResolveAPIKey())
}

func TestResolveAPIKeyByProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	assert.Equal(t, "gemini-key", (&Config{Provider: "gemini"}).ResolveAPIKey())
	assert.Equal(t, "anthropic-key", (&Config{Provider: "anthropic"}).ResolveAPIKey())
}

func TestSelectionLimitsOverrides(t *testing.T) {
	c := &Config{Limits: &LimitsConfig{Work: 2, Skills: 5}}

	limits := c.SelectionLimits()

	assert.Equal(t, 2, limits.MaxWork)
	assert.Equal(t, 5, limits.MaxSkills)
	// Unset values keep defaults.
	assert.Equal(t, 3, limits.MaxProjects)
	assert.Equal(t, 2, limits.MaxEducation)
}

func TestRewriteOptionsOverrides(t *testing.T) {
	defaults := (&Config{}).RewriteOptions()
	require.Greater(t, defaults.Concurrency, 0)

	c := &Config{Rewrite: &RewriteConfig{Concurrency: 8}}
	assert.Equal(t, 8, c.RewriteOptions().Concurrency)
	assert.Equal(t, defaults.Tier, c.RewriteOptions().Tier)
}
