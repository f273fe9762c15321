package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color adapts to light and dark terminal backgrounds.
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#F0F3F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#656D76", Dark: "#8B949E"}

	// LinkColor marks soft link targets.
	LinkColor = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	// PathColor marks real paths on a root.
	PathColor = lipgloss.AdaptiveColor{Light: "#6639BA", Dark: "#BC8CFF"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
)
