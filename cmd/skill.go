package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/agentbrief/internal/bundle"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/ui/theme"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill pack catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skill packs (optionally filtered by group)",
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		check, _ := cmd.Flags().GetBool("check")

		if check {
			if err := catalog.Validate(); err != nil {
				lipgloss.Println(theme.Mark(false) + " catalog has problems")
				return err
			}
			lipgloss.Println(theme.Mark(true) + " catalog is consistent")
			return nil
		}

		skills := catalog.AllSkills()
		if group != "" {
			var filtered []catalog.SkillMeta
			for _, s := range skills {
				if string(s.Group) == group {
					filtered = append(filtered, s)
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("no skills found for group %q", group)
			}
			skills = filtered
		}

		// Header.
		fmt.Printf("%-28s  %-30s  %-11s  %s\n", "ID", "Name", "Group", "Description")
		fmt.Println(strings.Repeat("─", 110))

		for _, s := range skills {
			name := s.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-28s  %-30s  %-11s  %s\n",
				s.ID, name, catalog.GroupDisplayName(s.Group), s.Description)
		}

		fmt.Printf("\n%d skills\n", len(skills))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the SKILL.md a bundle would contain for a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("skills-dir")
		var src bundle.ContentSource = bundle.FallbackSource{}
		if dir != "" {
			src = bundle.DirSource{Root: dir}
		}
		out, err := src.SkillDoc(args[0])
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("group", "", "Filter by group (core, stack, guardrail, deployment)")
	skillListCmd.Flags().Bool("check", false, "Validate catalog consistency instead of listing")
	skillShowCmd.Flags().String("skills-dir", "", "Directory of authored skill packs (<dir>/<id>/SKILL.md)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}
