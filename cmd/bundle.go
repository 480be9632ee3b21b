package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/bundle"
	"github.com/abhisek/agentbrief/internal/enhance"
	"github.com/abhisek/agentbrief/internal/ui/theme"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Package the document with its skill packs",
	Long: `Bundle writes the config document, one skills/<id>/SKILL.md per selected
skill, and an agentbrief.json summary. The bundle can go to a directory, a zip
archive, or S3-compatible object storage (--publish, configured under
bundle.endpoint/bucket/access_key/secret_key).`,
	RunE: runBundle,
}

func init() {
	bundleCmd.Flags().StringP("answers", "a", "", "Answers file (required)")
	bundleCmd.Flags().StringP("out", "o", "", "Output directory (default from config)")
	bundleCmd.Flags().String("zip", "", "Write a zip archive to this path instead of a directory")
	bundleCmd.Flags().Bool("dry-run", false, "Show the bundle layout without writing anything")
	bundleCmd.Flags().Bool("publish", false, "Upload the bundle to object storage")
	bundleCmd.Flags().String("skills-dir", "", "Directory of authored skill packs (<dir>/<id>/SKILL.md)")
	bundleCmd.Flags().Bool("enhance", false, "Rewrite prose sections with the configured LLM")
	_ = bundleCmd.MarkFlagRequired("answers")
}

func runBundle(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	outDir, _ := cmd.Flags().GetString("out")
	zipPath, _ := cmd.Flags().GetString("zip")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	publish, _ := cmd.Flags().GetBool("publish")
	skillsDir, _ := cmd.Flags().GetString("skills-dir")

	wantEnhance := cfg.LLM.Enhance
	if cmd.Flags().Changed("enhance") {
		wantEnhance, _ = cmd.Flags().GetBool("enhance")
	}
	if outDir == "" {
		outDir = cfg.Bundle.OutputDir
	}
	if publish && !cfg.Bundle.CanPublish() {
		return fmt.Errorf("publishing needs bundle.endpoint, bucket, access_key and secret_key in the config")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := answers.Load(answersPath)
	if err != nil {
		return err
	}

	e := newEnhancer(ctx, wantEnhance && !dryRun, nil)
	res, doc := enhance.Render(ctx, e, a, time.Now(), logger)

	var src bundle.ContentSource = bundle.FallbackSource{}
	if skillsDir != "" {
		src = bundle.DirSource{Root: skillsDir}
	}
	m, err := bundle.Build(doc, res, src)
	if err != nil {
		return fmt.Errorf("build bundle: %w", err)
	}

	if dryRun {
		root := outDir
		if zipPath != "" {
			root = filepath.Base(zipPath)
		}
		fmt.Print(m.Tree(root))
		fmt.Printf("\n%d files, %d bytes\n", len(m.Files), m.Size())
		return nil
	}

	switch {
	case zipPath != "":
		var buf bytes.Buffer
		if err := bundle.WriteZip(&buf, m, time.Now()); err != nil {
			return err
		}
		if err := os.WriteFile(zipPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write zip: %w", err)
		}
		lipgloss.Println(theme.Mark(true) + " wrote " + zipPath + "  " + theme.TierBadge(res.Tier()))
	default:
		if err := bundle.WriteDir(outDir, m); err != nil {
			return err
		}
		lipgloss.Println(theme.Mark(true) + fmt.Sprintf(" wrote %d files under %s  ", len(m.Files), outDir) + theme.TierBadge(res.Tier()))
	}

	if publish {
		b := cfg.Bundle
		p, err := bundle.NewPublisher(bundle.PublishConfig{
			Endpoint:    b.Endpoint,
			Region:      b.Region,
			AccessKey:   b.AccessKey,
			SecretKey:   b.SecretKey,
			Bucket:      b.Bucket,
			Prefix:      b.Prefix,
			UseSSL:      b.UseSSL,
			Concurrency: b.Concurrency,
		}, logger)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		keys, err := p.Publish(ctx, runID, m)
		if err != nil {
			return fmt.Errorf("publish bundle: %w", err)
		}
		logger.Info("published bundle", zap.String("run_id", runID), zap.Int("files", len(keys)))
		lipgloss.Println(theme.Mark(true) + fmt.Sprintf(" published %d objects to s3://%s/%s", len(keys), b.Bucket, p.Key(runID, "")))
	}
	return nil
}
