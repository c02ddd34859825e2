package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header      lipgloss.Style
	headerMuted lipgloss.Style
	persona     lipgloss.Style
	user        lipgloss.Style
	personaText lipgloss.Style
	userText    lipgloss.Style
	inputPanel  lipgloss.Style
	help        lipgloss.Style
	errorText   lipgloss.Style
	endTitle    lipgloss.Style
	endOption   lipgloss.Style
	endSelected lipgloss.Style
	counter     lipgloss.Style
}

func newStyles() styles {
	ink := lipgloss.Color("#3a3226")
	paper := lipgloss.Color("#f5efe0")
	ochre := lipgloss.Color("#b8863b")
	moss := lipgloss.Color("#6b7f59")
	muted := lipgloss.Color("#9a917e")
	warn := lipgloss.Color("#a4533d")

	return styles{
		header: lipgloss.NewStyle().
			Foreground(paper).
			Background(ochre).
			Bold(true).
			Padding(0, 1),
		headerMuted: lipgloss.NewStyle().Foreground(muted),
		persona:     lipgloss.NewStyle().Foreground(ochre).Bold(true),
		user:        lipgloss.NewStyle().Foreground(moss).Bold(true),
		personaText: lipgloss.NewStyle().Foreground(ink),
		userText:    lipgloss.NewStyle().Foreground(ink),
		inputPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ochre).
			Padding(0, 1),
		help:      lipgloss.NewStyle().Foreground(muted),
		errorText: lipgloss.NewStyle().Foreground(warn),
		endTitle: lipgloss.NewStyle().
			Foreground(ochre).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2),
		endOption: lipgloss.NewStyle().Foreground(ink).Padding(0, 2),
		endSelected: lipgloss.NewStyle().
			Foreground(paper).
			Background(moss).
			Bold(true).
			Padding(0, 2),
		counter: lipgloss.NewStyle().Foreground(muted),
	}
}
