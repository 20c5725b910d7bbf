package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk       = lipgloss.Color("#E0E0E0")
	ColorDim       = lipgloss.Color("#A0A0B0")
	ColorAccent    = lipgloss.Color("#6366F1")
	ColorAccentAlt = lipgloss.Color("#4F46E5")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarn      = lipgloss.Color("#F59E0B")
)
