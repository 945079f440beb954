package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Section  lipgloss.Style
	Lit      lipgloss.Style
	Dimmed   lipgloss.Style
	Selected lipgloss.Style
	Flow     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Section:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		Lit:      lipgloss.NewStyle(),
		Dimmed:   lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Flow:     lipgloss.NewStyle(),
	}
}
