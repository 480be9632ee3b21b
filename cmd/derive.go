package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/assemble"
	"github.com/abhisek/agentbrief/internal/decision"
	"github.com/abhisek/agentbrief/internal/enhance"
	"github.com/abhisek/agentbrief/internal/store"
	"github.com/abhisek/agentbrief/internal/ui/theme"
	"github.com/abhisek/agentbrief/internal/watch"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the config document from an answers file",
	Long: `Derive reads an answers file (YAML or JSON), runs the decision engine, and
writes the config document under the output directory using the filename the
chosen assistant expects (CLAUDE.md, .cursorrules, AGENTS.md, ...).

With --watch the document is rebuilt every time the answers file changes.`,
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().StringP("answers", "a", "", "Answers file (required)")
	deriveCmd.Flags().StringP("out", "o", "", "Output directory (default from config, usually .)")
	deriveCmd.Flags().Bool("stdout", false, "Print the document instead of writing it")
	deriveCmd.Flags().Bool("json", false, "Print the derivation result as JSON")
	deriveCmd.Flags().Bool("enhance", false, "Rewrite prose sections with the configured LLM")
	deriveCmd.Flags().Bool("watch", false, "Re-derive whenever the answers file changes")
	deriveCmd.Flags().Bool("no-record", false, "Do not record this derivation in history")
	_ = deriveCmd.MarkFlagRequired("answers")
	deriveCmd.MarkFlagsMutuallyExclusive("stdout", "json")
}

type deriveOpts struct {
	answersPath string
	outDir      string
	stdout      bool
	asJSON      bool
	enhancer    enhance.Enhancer
	history     store.DerivationRepo
}

func runDerive(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	outDir, _ := cmd.Flags().GetString("out")
	stdout, _ := cmd.Flags().GetBool("stdout")
	asJSON, _ := cmd.Flags().GetBool("json")
	watchMode, _ := cmd.Flags().GetBool("watch")
	noRecord, _ := cmd.Flags().GetBool("no-record")

	wantEnhance := cfg.LLM.Enhance
	if cmd.Flags().Changed("enhance") {
		wantEnhance, _ = cmd.Flags().GetBool("enhance")
	}
	if outDir == "" {
		outDir = cfg.Bundle.OutputDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := deriveOpts{
		answersPath: answersPath,
		outDir:      outDir,
		stdout:      stdout,
		asJSON:      asJSON,
	}

	record := cfg.Store.Record && !noRecord
	if record || wantEnhance {
		s, err := openStore(cmd)
		if err != nil {
			// History is optional; derivation still works without it.
			logger.Warn("history unavailable", zap.Error(err))
		} else {
			defer s.Close()
			if record {
				opts.history = s.DerivationRepo()
			}
			opts.enhancer = newEnhancer(ctx, wantEnhance, s.EventRepo())
		}
	}
	if opts.enhancer == nil && wantEnhance {
		opts.enhancer = newEnhancer(ctx, true, nil)
	}

	if err := deriveOnce(ctx, opts); err != nil {
		if !watchMode {
			return err
		}
		logger.Warn("derive failed", zap.Error(err))
	}
	if !watchMode {
		return nil
	}

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", answersPath)
	return watch.File(ctx, answersPath, watch.DefaultDebounce, logger, func(ctx context.Context) {
		if err := deriveOnce(ctx, opts); err != nil {
			logger.Warn("derive failed", zap.Error(err))
		}
	})
}

func deriveOnce(ctx context.Context, opts deriveOpts) error {
	a, err := answers.Load(opts.answersPath)
	if err != nil {
		return err
	}

	res, doc := enhance.Render(ctx, opts.enhancer, a, time.Now(), logger)

	switch {
	case opts.asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	case opts.stdout:
		fmt.Print(doc.String())
	}

	if !opts.stdout {
		path, err := writeDocument(opts.outDir, doc)
		if err != nil {
			return err
		}
		if !opts.asJSON {
			printDeriveSummary(path, res, doc)
		}
	}

	if opts.history != nil {
		d := &store.Derivation{
			ProjectName: a.String(answers.ProjectName),
			ProjectType: string(res.ProjectType),
			Tier:        int(res.Tier()),
			Filename:    doc.Filename,
			Skills:      res.Skills,
			Enhanced:    doc.Enhanced,
			Document:    doc.String(),
		}
		if err := opts.history.Record(ctx, d); err != nil {
			logger.Warn("record derivation", zap.Error(err))
		} else {
			logger.Debug("recorded derivation", zap.String("id", d.ID))
		}
	}
	return nil
}

func writeDocument(dir string, doc assemble.Document) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(doc.Filename))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

func printDeriveSummary(path string, res decision.Result, doc assemble.Document) {
	lipgloss.Println(theme.Title.Render("Wrote "+path) + "  " + theme.TierBadge(res.Tier()))
	lines := fmt.Sprintf("Role:   %s\nStack:  %d technologies\nSkills: %d packs\nRules:  %d guardrail instructions",
		res.Role.BaseRole, res.Summary.Stack, res.Summary.Skills, res.Summary.Instructions)
	if doc.Enhanced {
		lines += "\n" + theme.Hint.Render("Prose sections rewritten by the LLM.")
	}
	lipgloss.Println(theme.Card.Render(lines))
}
