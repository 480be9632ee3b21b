// Package theme holds the terminal styles used by the CLI.
package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/agentbrief/internal/guardrail"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Ok = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Card frames a block of summary lines.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// TierStyle is the badge style for a guardrail tier, colored by the tier.
func TierStyle(t guardrail.Tier) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(BgDark).
		Background(lipgloss.Color(t.Color())).
		Padding(0, 1)
}

// TierBadge renders "TIER n: LABEL" as a colored badge.
func TierBadge(t guardrail.Tier) string {
	return TierStyle(t).Render(fmt.Sprintf("TIER %d: %s", int(t), t.Label()))
}

// Mark renders a check or cross.
func Mark(ok bool) string {
	if ok {
		return Ok.Render("✓")
	}
	return Failed.Render("✗")
}
