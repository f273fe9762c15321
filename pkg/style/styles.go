// Package style holds the lipgloss and pterm styles used for terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/softsync/pkg/types"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(LinkColor)
)

// KindStyle returns the pterm style for an entry kind badge.
func KindStyle(kind string) *pterm.Style {
	switch kind {
	case types.KindHard:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case types.KindSoft:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Arrow joins a name and its link target.
func Arrow(name, link string) string {
	if link == "" {
		return name
	}
	return name + MutedStyle.Render(" -> ") + LinkStyle.Render(link)
}
