package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/prompts"
	"github.com/jonathan/resume-mate/internal/types"
)

const (
	promptYes = "Yes"
	promptNo  = "No"
)

var errAborted = errors.New("aborted")

var addCmd = &cobra.Command{
	Use:   "add <work|project|education|skill> <description>",
	Short: "Add an entry to the master profile from a free-text description",
	Long: "Describe an entry in plain language and let the extractor convert it " +
		"into structured profile data. The extracted entry is shown for " +
		"confirmation before it is saved.",
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var addYes bool

func init() {
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "save without asking for confirmation")
	rootCmd.AddCommand(addCmd)
}

// entitySchemas shows the extractor the exact shape to produce per entry kind.
var entitySchemas = map[string]string{
	"work": `{
  "name": "company name",
  "position": "job title",
  "startDate": "YYYY-MM",
  "endDate": "YYYY-MM (omit if ongoing)",
  "summary": "one sentence on the role",
  "highlights": [{"text": "achievement bullet"}],
  "techStack": ["technology"]
}`,
	"project": `{
  "name": "project name",
  "description": "what the project is",
  "startDate": "YYYY-MM (optional)",
  "endDate": "YYYY-MM (optional)",
  "highlights": [{"text": "achievement bullet"}],
  "techStack": ["technology"],
  "url": "link (optional)"
}`,
	"education": `{
  "institution": "school name",
  "area": "field of study",
  "studyType": "degree type",
  "startDate": "YYYY-MM",
  "endDate": "YYYY-MM (omit if ongoing)",
  "score": "GPA or grade (optional)",
  "courses": ["notable course"]
}`,
	"skill": `{
  "name": "skill name",
  "category": "skill category",
  "level": "Beginner|Intermediate|Advanced (optional)",
  "keywords": ["related term"]
}`,
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, description := args[0], args[1]

	schema, ok := entitySchemas[kind]
	if !ok {
		return fmt.Errorf("unknown entry kind %q (want work, project, education, or skill)", kind)
	}

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

	extracted, err := extractEntity(ctx, client, kind, description, schema)
	if err != nil {
		return err
	}

	if err := appendEntity(p, kind, extracted); err != nil {
		return err
	}
	profile.EnsureIDs(p)
	if err := profile.Validate(p); err != nil {
		return err
	}

	preview, err := yaml.Marshal(extractedPreview(p, kind))
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	cmd.Printf("Extracted %s entry:\n\n%s\n", kind, preview)

	if !addYes {
		if err := confirm("Save this entry?"); err != nil {
			cmd.Println("Not saved.")
			return nil
		}
	}

	if err := profile.Save(cfg.ProfilePath(), p); err != nil {
		return err
	}
	cmd.Printf("Saved to %s.\n", cfg.ProfilePath())
	return nil
}

// extractEntity asks the extractor to turn free text into one entry of the
// given kind, as JSON matching the kind's schema snippet.
func extractEntity(ctx context.Context, client llm.Client, kind, description, schema string) (json.RawMessage, error) {
	template := prompts.MustGet("entity.json", "extract-entity")
	prompt := prompts.Format(template, map[string]string{
		"EntityType":  kind,
		"Description": description,
		"Schema":      schema,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(responseText)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("extractor returned invalid JSON")
	}
	return json.RawMessage(cleaned), nil
}

// appendEntity decodes the extracted JSON into the right collection.
func appendEntity(p *types.MasterProfile, kind string, raw json.RawMessage) error {
	switch kind {
	case "work":
		var entry types.WorkExperience
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("extracted entry does not match the work shape: %w", err)
		}
		p.Work = append(p.Work, entry)
	case "project":
		var entry types.Project
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("extracted entry does not match the project shape: %w", err)
		}
		p.Projects = append(p.Projects, entry)
	case "education":
		var entry types.Education
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("extracted entry does not match the education shape: %w", err)
		}
		p.Education = append(p.Education, entry)
	case "skill":
		var entry types.Skill
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("extracted entry does not match the skill shape: %w", err)
		}
		p.Skills = append(p.Skills, entry)
	}
	return nil
}

// extractedPreview returns the just-appended entry for display.
func extractedPreview(p *types.MasterProfile, kind string) any {
	switch kind {
	case "work":
		return p.Work[len(p.Work)-1]
	case "project":
		return p.Projects[len(p.Projects)-1]
	case "education":
		return p.Education[len(p.Education)-1]
	default:
		return p.Skills[len(p.Skills)-1]
	}
}

func confirm(label string) error {
	prompt := promptui.Select{
		Label: label,
		Items: []string{promptYes, promptNo},
	}
	_, answer, err := prompt.Run()
	if err != nil {
		return err
	}
	if answer != promptYes {
		return errAborted
	}
	return nil
}
