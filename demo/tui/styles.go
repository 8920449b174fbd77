package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary  = "#7D56F4"
	colorSuccess  = "#04B575"
	colorError    = "#FF0000"
	colorWarning  = "#F2A900"
	colorInfo     = "#626262"
	colorSelected = "#FAFAFA"
	colorBorder   = "#874BFD"
)

// Styles for the TUI application
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorSelected)).
		Background(lipgloss.Color(colorPrimary))

	categoryStyles = map[string]lipgloss.Style{
		"priority":      lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)),
		"design":        lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		"accessibility": lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)),
	}
)
