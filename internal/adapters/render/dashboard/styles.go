package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	connected    lipgloss.Style
	disconnected lipgloss.Style
	label        lipgloss.Style
	value        lipgloss.Style
	section      lipgloss.Style
	empty        lipgloss.Style
	entryInfo    lipgloss.Style
	entrySuccess lipgloss.Style
	entryError   lipgloss.Style
	timestamp    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true),
		header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		connected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		disconnected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		label:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:      lipgloss.NewStyle().MarginTop(1),
		empty:        lipgloss.NewStyle().Faint(true),
		entryInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		entrySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		entryError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		timestamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
