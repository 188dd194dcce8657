// Package analyzer extracts structured JobRequirements from raw
// job-description text via a structured-output request to the LLM gateway.
package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/prompts"
	"github.com/jonathan/resume-mate/internal/types"
)

// maxRetries is the number of regenerate attempts after the first request
// returns output that does not parse against the requirements structure.
const maxRetries = 2

// Analyze extracts JobRequirements from raw job-description text.
// An empty or whitespace-only JD fails with *InputError before any request
// is issued. Unparsable gateway output is retried with a fresh request up
// to maxRetries times, then fails with *ExtractionError.
func Analyze(ctx context.Context, client llm.Client, jdText string) (*types.JobRequirements, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, &InputError{Message: "job description text is empty"}
	}

	prompt := buildExtractionPrompt(jdText)

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attempts++

		responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			// Context cancellation is not a parse problem; stop immediately.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		reqs, err := parseRequirements(responseText)
		if err != nil {
			lastErr = err
			continue
		}

		normalizeRequirements(reqs)
		return reqs, nil
	}

	return nil, &ExtractionError{
		Message:  "gateway returned unparsable requirements",
		Attempts: attempts,
		Cause:    lastErr,
	}
}

// buildExtractionPrompt constructs the prompt for structured extraction
func buildExtractionPrompt(jdText string) string {
	template := prompts.MustGet("analyzer.json", "extract-job-requirements")
	return prompts.Format(template, map[string]string{
		"JDText": jdText,
	})
}

// parseRequirements parses the JSON response into JobRequirements
func parseRequirements(jsonText string) (*types.JobRequirements, error) {
	var reqs types.JobRequirements
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonText)), &reqs); err != nil {
		return nil, err
	}
	return &reqs, nil
}

// normalizeRequirements lowercases and dedupes the keyword-bearing fields
// so downstream matching is case-insensitive and stable.
func normalizeRequirements(reqs *types.JobRequirements) {
	reqs.RequiredSkills = normalizeList(reqs.RequiredSkills)
	reqs.PreferredSkills = normalizeList(reqs.PreferredSkills)
	reqs.Keywords = normalizeList(reqs.Keywords)
	reqs.DomainTags = normalizeList(reqs.DomainTags)
	reqs.Seniority = strings.ToLower(strings.TrimSpace(reqs.Seniority))
}

// normalizeList lowercases, trims, and dedupes while preserving order.
func normalizeList(values []string) []string {
	if len(values) == 0 {
		return values
	}
	normalized := make([]string, 0, len(values))
	seen := make(map[string]bool)
	for _, v := range values {
		n := strings.ToLower(strings.TrimSpace(v))
		if n != "" && !seen[n] {
			normalized = append(normalized, n)
			seen[n] = true
		}
	}
	return normalized
}
