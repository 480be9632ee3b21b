package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/agentbrief/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded derivations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ds, err := s.DerivationRepo().List(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(ds) == 0 {
			fmt.Println("No derivations recorded yet.")
			return nil
		}

		// Header.
		fmt.Printf("%-8s  %-19s  %-20s  %-13s  %4s  %-32s  %6s  %s\n",
			"ID", "Timestamp", "Project", "Type", "Tier", "File", "Skills", "AI")
		fmt.Println(strings.Repeat("─", 120))

		for _, d := range ds {
			ai := ""
			if d.Enhanced {
				ai = "✓"
			}
			fmt.Printf("%-8s  %-19s  %-20s  %-13s  %4d  %-32s  %6d  %s\n",
				truncate(d.ID, 8),
				d.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(d.ProjectName, 20),
				d.ProjectType,
				d.Tier,
				truncate(d.Filename, 32),
				len(d.Skills),
				ai,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the document from a recorded derivation",
	Long:  "Show prints the stored document. The id may be abbreviated to any unique prefix shown by `history`.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.DerivationRepo()
		d, err := repo.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			d, err = findByPrefix(ctx, repo, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Print(d.Document)
		return nil
	},
}

func findByPrefix(ctx context.Context, repo store.DerivationRepo, prefix string) (*store.Derivation, error) {
	ds, err := repo.List(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	var match *store.Derivation
	for i := range ds {
		if !strings.HasPrefix(ds[i].ID, prefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = &ds[i]
	}
	if match == nil {
		return nil, fmt.Errorf("derivation %s: %w", prefix, store.ErrNotFound)
	}
	return match, nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of derivations to show")
	historyCmd.AddCommand(historyShowCmd)
}
