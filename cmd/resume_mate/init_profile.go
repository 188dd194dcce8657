package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter master profile",
	Long:  "Create a starter master profile file with one example entry per section, ready to edit.",
	RunE:  runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing profile file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.ProfilePath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("profile %s already exists (use --force to overwrite)", path)
	}

	starter := starterProfile()
	profile.EnsureIDs(starter)
	if err := profile.Save(path, starter); err != nil {
		return err
	}

	cmd.Printf("Created %s. Edit it with your own history, then run validate.\n", path)
	return nil
}

func starterProfile() *types.MasterProfile {
	return &types.MasterProfile{
		Basics: types.Basics{
			Name:    "Your Name",
			Label:   "Software Engineer",
			Email:   "you@example.com",
			Summary: "One or two sentences about your experience and focus.",
		},
		Work: []types.WorkExperience{
			{
				Name:      "Example Corp",
				Position:  "Software Engineer",
				StartDate: "2022-01",
				Summary:   "What you owned and built in this role.",
				Highlights: []types.Highlight{
					{Text: "An achievement with a concrete, measurable outcome."},
				},
				TechStack: []string{"Go", "PostgreSQL"},
			},
		},
		Projects: []types.Project{
			{
				Name:        "example-project",
				Description: "A side project worth showing.",
				StartDate:   "2023-06",
				TechStack:   []string{"Go"},
			},
		},
		Education: []types.Education{
			{
				Institution: "Example University",
				Area:        "Computer Science",
				StudyType:   "Bachelor",
				StartDate:   "2014-09",
				EndDate:     "2018-06",
			},
		},
		Skills: []types.Skill{
			{Name: "Go", Category: "Languages", Level: "Advanced"},
			{Name: "PostgreSQL", Category: "Databases"},
		},
	}
}
