package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/schemas"
	"github.com/jonathan/resume-mate/internal/types"
)

func TestEntitySchemasAreValidJSONShapes(t *testing.T) {
	for kind, schema := range entitySchemas {
		assert.True(t, json.Valid([]byte(schema)), "schema for %s is not valid JSON", kind)
	}
}

func TestAppendEntityWork(t *testing.T) {
	p := &types.MasterProfile{}
	raw := json.RawMessage(`{
		"name": "Searchly",
		"position": "Senior Software Engineer",
		"startDate": "2022-03",
		"summary": "Built search infrastructure.",
		"highlights": [{"text": "Cut p99 latency by 40%."}],
		"techStack": ["Rust"]
	}`)

	require.NoError(t, appendEntity(p, "work", raw))

	require.Len(t, p.Work, 1)
	assert.Equal(t, "Searchly", p.Work[0].Name)
	assert.Len(t, p.Work[0].Highlights, 1)

	// IDs get assigned after extraction, never by the extractor.
	assert.Equal(t, 2, profile.EnsureIDs(p))
}

func TestAppendEntitySkill(t *testing.T) {
	p := &types.MasterProfile{}
	raw := json.RawMessage(`{"name": "Rust", "category": "Languages", "keywords": ["tokio"]}`)

	require.NoError(t, appendEntity(p, "skill", raw))

	require.Len(t, p.Skills, 1)
	assert.Equal(t, "Rust", p.Skills[0].Name)
}

func TestAppendEntityRejectsWrongShape(t *testing.T) {
	p := &types.MasterProfile{}
	assert.Error(t, appendEntity(p, "work", json.RawMessage(`{"name": 42}`)))
}

func TestStarterProfileIsValid(t *testing.T) {
	starter := starterProfile()
	profile.EnsureIDs(starter)

	require.NoError(t, profile.Validate(starter))
	require.NoError(t, schemas.ValidateProfileValue(starter))
}

func TestExtractedPreviewReturnsLastEntry(t *testing.T) {
	p := &types.MasterProfile{
		Work: []types.WorkExperience{{ID: "a"}, {ID: "b"}},
	}

	preview := extractedPreview(p, "work")

	entry, ok := preview.(types.WorkExperience)
	require.True(t, ok)
	assert.Equal(t, "b", entry.ID)
}
