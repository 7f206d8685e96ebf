package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/esmatch/internal/match"
)

// Color palette (ANSI 256).
var (
	ColorLive     = lipgloss.Color("196")
	ColorUpcoming = lipgloss.Color("42")
	ColorFinished = lipgloss.Color("245")
	ColorHeader   = lipgloss.Color("63")
	ColorLabel    = lipgloss.Color("244")
	ColorValue    = lipgloss.Color("255")
	ColorError    = lipgloss.Color("203")
	ColorWarning  = lipgloss.Color("214")
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			MarginBottom(1)

	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorFinished).Italic(true)
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorLabel)

	LiveStyle     = lipgloss.NewStyle().Foreground(ColorLive).Bold(true)
	FinishedStyle = lipgloss.NewStyle().Foreground(ColorFinished)
	UpcomingStyle = lipgloss.NewStyle().Foreground(ColorUpcoming)
)

// StatusStyle returns the style for a match status.
func StatusStyle(s match.Status) lipgloss.Style {
	switch s {
	case match.StatusLive:
		return LiveStyle
	case match.StatusFinished, match.StatusCanceled:
		return FinishedStyle
	case match.StatusNotStarted, match.StatusPostponed:
		return UpcomingStyle
	default:
		return ValueStyle
	}
}
