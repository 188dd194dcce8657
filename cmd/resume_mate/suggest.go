package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/prompts"
	"github.com/jonathan/resume-mate/internal/types"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest improvements to the master profile",
	Long: "Review the master profile and list concrete improvements: weak " +
		"bullets, missing quantified outcomes, stale skills. Suggestions are " +
		"advisory; nothing is changed.",
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

// suggestion is one piece of advice tied to a profile section or entry.
type suggestion struct {
	Section string `json:"section"`
	EntryID string `json:"entry_id"`
	Advice  string `json:"advice"`
}

type suggestionList struct {
	Suggestions []suggestion `json:"suggestions"`
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := profile.Load(cfg.ProfilePath())
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	suggestions, err := suggestImprovements(ctx, client, p)
	if err != nil {
		return err
	}

	if len(suggestions) == 0 {
		cmd.Println("No suggestions; the profile looks solid.")
		return nil
	}

	cmd.Printf("Suggestions for %s:\n\n", cfg.ProfilePath())
	for i, s := range suggestions {
		cmd.Printf("  %d. %s%s\n", i+1, formatSuggestionTarget(&s), s.Advice)
	}
	return nil
}

// suggestImprovements asks the model to review the whole profile and
// returns its advice, most impactful first.
func suggestImprovements(ctx context.Context, client llm.Client, p *types.MasterProfile) ([]suggestion, error) {
	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	template := prompts.MustGet("suggest.json", "suggest-improvements")
	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON": string(profileJSON),
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}

	return parseSuggestions(responseText)
}

// parseSuggestions decodes the structured response, dropping entries with
// no advice text.
func parseSuggestions(responseText string) ([]suggestion, error) {
	var list suggestionList
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &list); err != nil {
		return nil, fmt.Errorf("suggestions were not valid JSON: %w", err)
	}

	suggestions := make([]suggestion, 0, len(list.Suggestions))
	for _, s := range list.Suggestions {
		if strings.TrimSpace(s.Advice) == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// formatSuggestionTarget renders the "[work work-1] " prefix for advice
// tied to a section or entry.
func formatSuggestionTarget(s *suggestion) string {
	section := strings.TrimSpace(s.Section)
	entryID := strings.TrimSpace(s.EntryID)
	switch {
	case section != "" && entryID != "":
		return fmt.Sprintf("[%s %s] ", section, entryID)
	case section != "":
		return fmt.Sprintf("[%s] ", section)
	default:
		return ""
	}
}
