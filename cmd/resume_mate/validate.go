package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the master profile",
	Long:  "Check the master profile against the profile schema and the semantic rules (date ordering, unique IDs, unique skill names).",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := profile.Load(cfg.ProfilePath())
	if err != nil {
		return err
	}

	if err := schemas.ValidateProfileValue(p); err != nil {
		return err
	}
	if err := profile.Validate(p); err != nil {
		return err
	}

	cmd.Printf("Profile %s is valid: %d work, %d projects, %d education, %d skills.\n",
		cfg.ProfilePath(), len(p.Work), len(p.Projects), len(p.Education), len(p.Skills))
	return nil
}
