package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/rendering"
	"github.com/jonathan/resume-mate/internal/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render a profile to an HTML resume",
	Long: "Render a tailored profile (or, with --master, the master profile " +
		"itself) into a standalone HTML resume.",
	RunE: runBuild,
}

var (
	buildInFile   string
	buildOutFile  string
	buildTemplate string
	buildMaster   bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildInFile, "in", "i", "tailored_profile.yaml", "tailored profile to render")
	buildCmd.Flags().StringVarP(&buildOutFile, "out", "o", "resume.html", "output HTML file")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "custom HTML template file")
	buildCmd.Flags().BoolVar(&buildMaster, "master", false, "render the master profile instead of a tailored one")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	var p *types.MasterProfile
	if buildMaster {
		p, err = profile.Load(cfg.ProfilePath())
		if err != nil {
			return err
		}
	} else {
		p, err = loadTailoredProfile(buildInFile)
		if err != nil {
			return err
		}
	}

	var html string
	if buildTemplate != "" {
		html, err = rendering.RenderHTMLFile(p, buildTemplate)
	} else {
		html, err = rendering.RenderHTML(p)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(buildOutFile, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", buildOutFile, err)
	}
	cmd.Printf("Rendered resume to %s.\n", buildOutFile)
	return nil
}

func loadTailoredProfile(path string) (*types.MasterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tailored profile %s (run tailor first): %w", path, err)
	}

	var tailored types.TailoredProfile
	if err := yaml.Unmarshal(data, &tailored); err != nil {
		return nil, fmt.Errorf("failed to parse tailored profile %s: %w", path, err)
	}
	return &tailored.Profile, nil
}
