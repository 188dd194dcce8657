// Package rewriting rewrites the natural-language fields of selected
// profile entries toward a target job, fanning requests out per entry.
// Rewriting degrades rather than fails: an entry whose rewrite cannot be
// trusted keeps its original text and produces a RewriteWarning.
package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/prompts"
	"github.com/jonathan/resume-mate/internal/types"
)

// defaultConcurrency limits how many rewrite requests run at once.
const defaultConcurrency = 4

// Options configures a rewrite pass.
type Options struct {
	Tier        llm.ModelTier
	Concurrency int
}

// DefaultOptions uses the advanced tier; rewriting is the quality-critical
// stage of the pipeline.
func DefaultOptions() Options {
	return Options{
		Tier:        llm.TierAdvanced,
		Concurrency: defaultConcurrency,
	}
}

// entryRewrite is the structured output expected from an entry rewrite.
type entryRewrite struct {
	Summary    string            `json:"summary"`
	Highlights map[string]string `json:"highlights"`
}

// summaryRewrite is the structured output expected from a summary rewrite.
type summaryRewrite struct {
	Summary string `json:"summary"`
}

// Rewrite rewrites profile's basics summary and the summary, description,
// and highlight texts of its work and project entries, in place. Entries
// run concurrently. A failed or untrustworthy rewrite keeps the entry's
// original text and is reported as a warning; only context cancellation
// aborts the pass as a whole.
func Rewrite(ctx context.Context, client llm.Client, profile *types.MasterProfile, reqs *types.JobRequirements, opts Options) ([]types.RewriteWarning, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierAdvanced
	}

	jobContext := buildJobContext(reqs)

	var mu sync.Mutex
	reasons := make(map[string]string)
	record := func(id, reason string) {
		mu.Lock()
		reasons[id] = reason
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	if strings.TrimSpace(profile.Basics.Summary) != "" {
		g.Go(func() error {
			if reason := rewriteBasicsSummary(ctx, client, &profile.Basics, jobContext, opts.Tier); reason != "" {
				record("basics", reason)
			}
			return ctx.Err()
		})
	}

	for i := range profile.Work {
		w := &profile.Work[i]
		g.Go(func() error {
			if reason := rewriteEntry(ctx, client, w, &w.Summary, w.Highlights, jobContext, opts.Tier); reason != "" {
				record(w.ID, reason)
			}
			return ctx.Err()
		})
	}

	for i := range profile.Projects {
		p := &profile.Projects[i]
		g.Go(func() error {
			if reason := rewriteEntry(ctx, client, p, &p.Description, p.Highlights, jobContext, opts.Tier); reason != "" {
				record(p.ID, reason)
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return collectWarnings(profile, reasons), nil
}

// collectWarnings orders recorded per-entry reasons deterministically:
// basics first, then work and projects in profile order.
func collectWarnings(profile *types.MasterProfile, reasons map[string]string) []types.RewriteWarning {
	var warnings []types.RewriteWarning
	appendFor := func(id string) {
		if reason, ok := reasons[id]; ok {
			warnings = append(warnings, types.RewriteWarning{EntryID: id, Reason: reason})
		}
	}

	appendFor("basics")
	for i := range profile.Work {
		appendFor(profile.Work[i].ID)
	}
	for i := range profile.Projects {
		appendFor(profile.Projects[i].ID)
	}
	return warnings
}

// buildJobContext renders the target-job section shared by all rewrite
// prompts from the analyzed requirements.
func buildJobContext(reqs *types.JobRequirements) string {
	if reqs == nil {
		return ""
	}

	keywords := make([]string, 0, len(reqs.RequiredSkills)+len(reqs.PreferredSkills)+len(reqs.Keywords))
	keywords = append(keywords, reqs.RequiredSkills...)
	keywords = append(keywords, reqs.PreferredSkills...)
	keywords = append(keywords, reqs.Keywords...)

	template := prompts.MustGet("rewriting.json", "rewrite-job-context")
	return prompts.Format(template, map[string]string{
		"RoleMission": reqs.RoleMission,
		"Keywords":    strings.Join(keywords, ", "),
	})
}

// rewriteEntry rewrites one entry's summary field and highlight texts in
// place. It returns an empty string on success, or the reason the entry
// kept its original text.
func rewriteEntry(ctx context.Context, client llm.Client, entry any, summary *string, highlights []types.Highlight, jobContext string, tier llm.ModelTier) string {
	if strings.TrimSpace(*summary) == "" && len(highlights) == 0 {
		return ""
	}

	entryJSON, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to encode entry: %v", err)
	}

	prompt := buildEntryPrompt(string(entryJSON), jobContext)

	responseText, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return fmt.Sprintf("rewrite request failed: %v", err)
	}

	var rewrite entryRewrite
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &rewrite); err != nil {
		return fmt.Sprintf("rewrite response was not valid JSON: %v", err)
	}

	if err := validateHighlights(highlights, rewrite.Highlights); err != nil {
		return err.Error()
	}

	// A rewrite that drops the summary field is as untrustworthy as one
	// that drops a highlight; the whole entry keeps its original text.
	if strings.TrimSpace(*summary) != "" && strings.TrimSpace(rewrite.Summary) == "" {
		return "rewrite returned an empty summary"
	}

	if err := checkProtectedFacts(entryText(*summary, highlights), rewrittenText(&rewrite, highlights)); err != nil {
		return err.Error()
	}

	if strings.TrimSpace(*summary) != "" {
		*summary = rewrite.Summary
	}
	for i := range highlights {
		highlights[i].Text = rewrite.Highlights[highlights[i].ID]
	}
	return ""
}

// rewriteBasicsSummary rewrites the top-level professional summary.
func rewriteBasicsSummary(ctx context.Context, client llm.Client, basics *types.Basics, jobContext string, tier llm.ModelTier) string {
	template := prompts.MustGet("rewriting.json", "rewrite-summary")
	prompt := prompts.Format(template, map[string]string{
		"Summary": basics.Summary,
	})
	if jobContext != "" {
		prompt = jobContext + "\n" + prompt
	}

	responseText, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return fmt.Sprintf("rewrite request failed: %v", err)
	}

	var rewrite summaryRewrite
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &rewrite); err != nil {
		return fmt.Sprintf("rewrite response was not valid JSON: %v", err)
	}
	if strings.TrimSpace(rewrite.Summary) == "" {
		return "rewrite returned an empty summary"
	}

	if err := checkProtectedFacts(basics.Summary, rewrite.Summary); err != nil {
		return err.Error()
	}

	basics.Summary = rewrite.Summary
	return ""
}

// buildEntryPrompt assembles the entry rewrite prompt from its sections.
func buildEntryPrompt(entryJSON, jobContext string) string {
	intro := prompts.Format(prompts.MustGet("rewriting.json", "rewrite-entry-intro"), map[string]string{
		"EntryJSON": entryJSON,
	})

	sections := []string{intro}
	if jobContext != "" {
		sections = append(sections, jobContext)
	}
	sections = append(sections,
		prompts.MustGet("rewriting.json", "rewrite-entry-preservation"),
		prompts.MustGet("rewriting.json", "rewrite-entry-output"),
	)
	return strings.Join(sections, "\n")
}

// validateHighlights checks that the rewrite covers exactly the source
// highlight IDs, each with non-empty text.
func validateHighlights(original []types.Highlight, rewritten map[string]string) error {
	if len(rewritten) != len(original) {
		return fmt.Errorf("rewrite returned %d highlights, expected %d", len(rewritten), len(original))
	}
	for _, h := range original {
		text, ok := rewritten[h.ID]
		if !ok {
			return fmt.Errorf("rewrite dropped highlight %q", h.ID)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("rewrite returned empty text for highlight %q", h.ID)
		}
	}
	return nil
}

// entryText joins an entry's rewritable text for the protected-facts check.
func entryText(summary string, highlights []types.Highlight) string {
	parts := []string{summary}
	for _, h := range highlights {
		parts = append(parts, h.Text)
	}
	return strings.Join(parts, "\n")
}

// rewrittenText joins the rewrite output in source highlight order.
func rewrittenText(rewrite *entryRewrite, original []types.Highlight) string {
	parts := []string{rewrite.Summary}
	for _, h := range original {
		parts = append(parts, rewrite.Highlights[h.ID])
	}
	return strings.Join(parts, "\n")
}
