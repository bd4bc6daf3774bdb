package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#A78BFA")
	success   = lipgloss.Color("#10B981")
	danger    = lipgloss.Color("#EF4444")
	muted     = lipgloss.Color("#6B7280")
	text      = lipgloss.Color("#F9FAFB")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(cellWidth).
			Align(lipgloss.Center)

	dayNumberStyle    = lipgloss.NewStyle().Foreground(text)
	todayNumberStyle  = lipgloss.NewStyle().Bold(true).Foreground(success)
	cursorNumberStyle = lipgloss.NewStyle().Bold(true).Background(primary).Foreground(text)

	chipStyle     = lipgloss.NewStyle().Foreground(secondary)
	overflowStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(danger)
	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(secondary)

	labelStyle        = lipgloss.NewStyle().Width(13).Foreground(muted)
	focusedLabelStyle = lipgloss.NewStyle().Width(13).Foreground(primary).Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(muted)
	boldStyle  = lipgloss.NewStyle().Bold(true).Foreground(text)
)
