package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(`{"a": 1}`))
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock("  {\"a\": 1}  \n"))
	assert.Equal(t, "", CleanJSONBlock(""))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Equal(t, "he...", TruncateForLog("hello world", 2))
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "trimmed", TruncateForLog("  trimmed  ", 10))
}

func TestConfigGetModelFallbackChain(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierStandard: "standard-model"},
	}

	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "standard-model", cfg.GetModel(TierStandard))

	empty := &Config{Provider: ProviderGemini}
	assert.Equal(t, "", empty.GetModel(TierLite))
}

func TestConfigWithModelDoesNotMutate(t *testing.T) {
	base := DefaultGeminiConfig()
	derived := base.WithModel(TierAdvanced, "gemini-exp")

	assert.Equal(t, "gemini-exp", derived.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", base.GetModel(TierAdvanced))
}
