package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-mate/internal/jd"
	"github.com/jonathan/resume-mate/internal/profile"
	"github.com/jonathan/resume-mate/internal/rendering"
	"github.com/jonathan/resume-mate/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor the master profile to a job description",
	Long: "Run the full pipeline: analyze the job description, select the most " +
		"relevant profile entries, rewrite their text toward the role, and emit a " +
		"validated tailored profile.",
	RunE: runTailor,
}

var (
	tailorJDSource string
	tailorOutFile  string
	tailorHTMLFile string
)

func init() {
	tailorCmd.Flags().StringVar(&tailorJDSource, "jd", "", "job description source: a file path or URL (required)")
	tailorCmd.Flags().StringVarP(&tailorOutFile, "out", "o", "tailored_profile.yaml", "path for the tailored profile YAML")
	tailorCmd.Flags().StringVar(&tailorHTMLFile, "html", "", "also render the tailored resume to this HTML file")
	_ = tailorCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	masterProfile, err := profile.Load(cfg.ProfilePath())
	if err != nil {
		return err
	}
	if err := profile.Validate(masterProfile); err != nil {
		return err
	}

	ctx := context.Background()

	jdText, err := jd.Load(ctx, tailorJDSource, nil)
	if err != nil {
		return err
	}
	logger.Debug("job description loaded",
		zap.String("source", tailorJDSource),
		zap.Int("chars", len(jdText)))

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	orchestrator := tailoring.New(client, logger,
		tailoring.WithLimits(cfg.SelectionLimits()),
		tailoring.WithRewriteOptions(cfg.RewriteOptions()))

	tailored, err := orchestrator.Tailor(ctx, masterProfile, jdText)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(tailored)
	if err != nil {
		return fmt.Errorf("failed to encode tailored profile: %w", err)
	}
	if err := os.WriteFile(tailorOutFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tailorOutFile, err)
	}
	cmd.Printf("Wrote tailored profile to %s (%d entries, %d warnings).\n",
		tailorOutFile, len(tailored.Selection), len(tailored.Warnings))

	for _, w := range tailored.Warnings {
		cmd.Printf("  warning: %s kept its original text: %s\n", w.EntryID, w.Reason)
	}

	if tailorHTMLFile != "" {
		html, err := rendering.RenderHTML(&tailored.Profile)
		if err != nil {
			return err
		}
		if err := os.WriteFile(tailorHTMLFile, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", tailorHTMLFile, err)
		}
		cmd.Printf("Rendered resume to %s.\n", tailorHTMLFile)
	}

	return nil
}
