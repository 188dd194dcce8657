package rewriting

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/types"
)

// fakeClient scripts GenerateJSON responses by matching a substring of the
// prompt, so each entry can get its own canned rewrite.
type fakeClient struct {
	responses map[string]string
	err       error
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.GenerateJSON(context.Background(), prompt, llm.TierStandard)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for needle, response := range f.responses {
		if strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return "", errors.New("no scripted response for prompt")
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func entryResponse(t *testing.T, summary string, highlights map[string]string) string {
	t.Helper()
	raw, err := json.Marshal(entryRewrite{Summary: summary, Highlights: highlights})
	require.NoError(t, err)
	return string(raw)
}

func rewriteProfile() *types.MasterProfile {
	return &types.MasterProfile{
		Basics: types.Basics{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Summary: "Engineer with 8 years of backend experience.",
		},
		Work: []types.WorkExperience{
			{
				ID:        "work-1",
				Name:      "Searchly",
				Position:  "Senior Software Engineer",
				StartDate: "2022-03",
				Summary:   "Built search infrastructure.",
				Highlights: []types.Highlight{
					{ID: "h-1", Text: "Cut p99 latency by 40% across the ranking fleet."},
				},
			},
		},
	}
}

func TestRewriteAppliesRewrittenText(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Built search infrastructure.": entryResponse(t, "Designed and scaled search infrastructure.", map[string]string{
			"h-1": "Reduced p99 latency by 40% for the ranking fleet.",
		}),
		"8 years of backend experience": `{"summary": "Backend engineer with 8 years of experience in search systems."}`,
	}}

	profile := rewriteProfile()
	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Designed and scaled search infrastructure.", profile.Work[0].Summary)
	assert.Equal(t, "Reduced p99 latency by 40% for the ranking fleet.", profile.Work[0].Highlights[0].Text)
	assert.Equal(t, "Backend engineer with 8 years of experience in search systems.", profile.Basics.Summary)
}

func TestRewriteKeepsOriginalOnRequestFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}

	profile := rewriteProfile()
	original := profile.Work[0].Highlights[0].Text

	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, original, profile.Work[0].Highlights[0].Text)
	require.Len(t, warnings, 2) // basics summary and work-1 both degraded
	ids := []string{warnings[0].EntryID, warnings[1].EntryID}
	assert.Equal(t, []string{"basics", "work-1"}, ids)
	assert.Contains(t, warnings[1].Reason, "rewrite request failed")
}

func TestRewriteRejectsDroppedProtectedFact(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Built search infrastructure.": entryResponse(t, "Improved search systems.", map[string]string{
			"h-1": "Substantially reduced ranking latency.", // 40% dropped
		}),
		"8 years of backend experience": `{"summary": "Backend engineer with 8 years of experience."}`,
	}}

	profile := rewriteProfile()
	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "work-1", warnings[0].EntryID)
	assert.Contains(t, warnings[0].Reason, "dropped protected fact")
	assert.Equal(t, "Built search infrastructure.", profile.Work[0].Summary)
	assert.Equal(t, "Cut p99 latency by 40% across the ranking fleet.", profile.Work[0].Highlights[0].Text)
}

func TestRewriteRejectsInventedFact(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Built search infrastructure.": entryResponse(t, "Built search infrastructure serving 5M users.", map[string]string{
			"h-1": "Cut p99 latency by 40% across the ranking fleet.",
		}),
		"8 years of backend experience": `{"summary": "Backend engineer with 8 years of experience."}`,
	}}

	profile := rewriteProfile()
	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "work-1", warnings[0].EntryID)
	assert.Contains(t, warnings[0].Reason, "introduced unsupported fact")
}

func TestRewriteRejectsRenamedHighlights(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Built search infrastructure.": entryResponse(t, "Built search infrastructure.", map[string]string{
			"h-renamed": "Cut p99 latency by 40% across the ranking fleet.",
		}),
		"8 years of backend experience": `{"summary": "Backend engineer with 8 years of experience."}`,
	}}

	profile := rewriteProfile()
	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "work-1", warnings[0].EntryID)
	assert.Contains(t, warnings[0].Reason, "dropped highlight")
	assert.Equal(t, "Cut p99 latency by 40% across the ranking fleet.", profile.Work[0].Highlights[0].Text)
}

func TestRewriteRejectsEmptySummaryForNonEmptySource(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Built search infrastructure.": entryResponse(t, "", map[string]string{
			"h-1": "Cut p99 latency by 40% across the ranking fleet.",
		}),
		"8 years of backend experience": `{"summary": "Backend engineer with 8 years of experience."}`,
	}}

	profile := rewriteProfile()
	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "work-1", warnings[0].EntryID)
	assert.Contains(t, warnings[0].Reason, "empty summary")

	// Nothing is partially applied: summary and highlights both keep the
	// original text.
	assert.Equal(t, "Built search infrastructure.", profile.Work[0].Summary)
	assert.Equal(t, "Cut p99 latency by 40% across the ranking fleet.", profile.Work[0].Highlights[0].Text)
}

func TestRewriteSkipsEntriesWithoutText(t *testing.T) {
	profile := &types.MasterProfile{
		Work: []types.WorkExperience{
			{ID: "work-bare", Name: "Acme", Position: "Engineer", StartDate: "2020-01"},
		},
	}
	client := &fakeClient{err: errors.New("should not be called")}

	warnings, err := Rewrite(context.Background(), client, profile, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestRewriteStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{err: context.Canceled}
	_, err := Rewrite(ctx, client, rewriteProfile(), nil, DefaultOptions())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNumericTokens(t *testing.T) {
	tokens := numericTokens("Raised $1,200,000 and grew revenue 35% in 2023.")
	assert.Equal(t, []string{"$1,200,000", "35%", "2023"}, tokens)
}

func TestCheckProtectedFacts(t *testing.T) {
	assert.NoError(t, checkProtectedFacts("grew 35% in 2023", "in 2023 grew 35%"))
	assert.Error(t, checkProtectedFacts("grew 35%", "grew substantially"))
	assert.Error(t, checkProtectedFacts("grew revenue", "grew revenue 35%"))
	assert.NoError(t, checkProtectedFacts("", ""))
}
