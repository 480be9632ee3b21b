package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/assemble"
	"github.com/abhisek/agentbrief/internal/decision"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the config document in the terminal (nothing is written)",
	Long: `Preview derives the document from an answers file and renders it as styled
markdown. It never calls the LLM, never writes files, and records no history.

Answers that leave the project type empty produce no document, matching the
live preview the server sends.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("answers", "a", "", "Answers file (required)")
	previewCmd.Flags().Int("width", 100, "Word-wrap width")
	previewCmd.Flags().Bool("raw", false, "Print plain markdown without styling")
	previewCmd.Flags().String("section", "", "Only show one section (e.g. \"Build Sequence\")")
	_ = previewCmd.MarkFlagRequired("answers")
}

func runPreview(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	width, _ := cmd.Flags().GetInt("width")
	raw, _ := cmd.Flags().GetBool("raw")
	only, _ := cmd.Flags().GetString("section")

	a, err := answers.Load(answersPath)
	if err != nil {
		return err
	}

	res := decision.DerivePartial(a)
	if res == nil {
		fmt.Println("Not ready: answer projectType to see a preview.")
		return nil
	}

	doc := assemble.Assemble(a, *res, assemble.Options{Now: time.Now()})
	md := doc.String()
	if only != "" {
		s, ok := doc.Section(only)
		if !ok {
			return fmt.Errorf("unknown section %q", only)
		}
		md = s.String() + "\n"
	}

	if raw {
		fmt.Print(md)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Print(out)
	return nil
}
