package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompt(t *testing.T) {
	prompt, err := Get("analyzer.json", "extract-job-requirements")

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.JDText}}")
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Get("analyzer.json", "no-such-key")
	assert.Error(t, err)
}

func TestGetUnknownFile(t *testing.T) {
	_, err := Get("missing.json", "extract-job-requirements")
	assert.Error(t, err)
}

func TestFormatReplacesPlaceholders(t *testing.T) {
	result := Format("Analyze {{.JDText}} for {{.Role}}", map[string]string{
		"JDText": "the posting",
		"Role":   "engineer",
	})

	assert.Equal(t, "Analyze the posting for engineer", result)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	result := Format("Keep {{.Unknown}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Keep {{.Unknown}}", result)
}

func TestListRewritingPrompts(t *testing.T) {
	keys, err := List("rewriting.json")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"rewrite-entry-intro",
		"rewrite-job-context",
		"rewrite-entry-preservation",
		"rewrite-entry-output",
		"rewrite-summary",
	}, keys)
}

func TestCacheSurvivesClear(t *testing.T) {
	ClearCache()
	first := MustGet("entity.json", "extract-entity")
	second := MustGet("entity.json", "extract-entity")
	assert.Equal(t, first, second)
}
