package ui

import "charm.land/lipgloss/v2"

// Colors shared by all components
var (
	// Accent is the highlight color for selected/active items (pink)
	Accent = lipgloss.Color("212")

	// Success is used for clean state and positive outcomes (green)
	Success = lipgloss.Color("82")

	// Warn is used for unstaged changes and upstream drift (orange)
	Warn = lipgloss.Color("214")

	// Muted is used for secondary/inactive text (gray)
	Muted = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal = lipgloss.Color("252")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// WarnStyle applies the warn color
	WarnStyle = lipgloss.NewStyle().Foreground(Warn)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// NormalStyle applies the normal text color
	NormalStyle = lipgloss.NewStyle().Foreground(Normal)

	// HighlightStyle marks matched characters during fuzzy filtering
	// (pink, bold, underline)
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)
