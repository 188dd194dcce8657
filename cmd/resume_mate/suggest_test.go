package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	suggestions, err := parseSuggestions(`{
		"suggestions": [
			{"section": "work", "entry_id": "work-1", "advice": "Quantify the latency win."},
			{"section": "skills", "entry_id": "", "advice": "Add the cloud platforms you deploy to."},
			{"section": "work", "entry_id": "work-2", "advice": "   "}
		]
	}`)

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "work-1", suggestions[0].EntryID)
	assert.Equal(t, "Quantify the latency win.", suggestions[0].Advice)
	assert.Equal(t, "skills", suggestions[1].Section)
}

func TestParseSuggestionsAcceptsFencedJSON(t *testing.T) {
	suggestions, err := parseSuggestions("```json\n{\"suggestions\": [{\"section\": \"basics\", \"entry_id\": \"\", \"advice\": \"Tighten the summary.\"}]}\n```")

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Tighten the summary.", suggestions[0].Advice)
}

func TestParseSuggestionsRejectsGarbage(t *testing.T) {
	_, err := parseSuggestions("not json")
	assert.Error(t, err)
}

func TestParseSuggestionsEmptyList(t *testing.T) {
	suggestions, err := parseSuggestions(`{"suggestions": []}`)

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestFormatSuggestionTarget(t *testing.T) {
	assert.Equal(t, "[work work-1] ", formatSuggestionTarget(&suggestion{Section: "work", EntryID: "work-1"}))
	assert.Equal(t, "[skills] ", formatSuggestionTarget(&suggestion{Section: "skills"}))
	assert.Equal(t, "", formatSuggestionTarget(&suggestion{}))
}
