package dashboard

import (
	"fmt"

	"github.com/backpork/backpork-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type View struct {
	State  domain.ConnectionState
	Stats  domain.Stats
	Recent []domain.LogEntry
}

type RenderOptions struct {
	// MaxRecent bounds the activity feed; 0 shows everything passed in.
	MaxRecent int
}

func Render(view View, opts RenderOptions) string {
	return renderView(view, opts, newStyles())
}

func renderView(view View, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("BackPork Dashboard"),
		renderState(view.State, s),
		s.section.Render(renderStats(view.Stats, s)),
		s.section.Render(renderFeed(view.Recent, opts, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderState(state domain.ConnectionState, s styles) string {
	if state == domain.StateConnected {
		return s.connected.Render("Connected")
	}

	return s.disconnected.Render("Disconnected")
}

func renderStats(stats domain.Stats, s styles) string {
	rows := []struct {
		label string
		value string
	}{
		{"Games", fmt.Sprintf("%d", stats.TotalGames)},
		{"Set up", fmt.Sprintf("%d", stats.SetupGames)},
		{"Libraries", fmt.Sprintf("%d", stats.TotalLibraries)},
		{"Success rate", fmt.Sprintf("%d%%", stats.SuccessRate)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s",
			s.label.Render(row.label+":"),
			s.value.Render(row.value)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderFeed(entries []domain.LogEntry, opts RenderOptions, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("Recent activity (%d)", len(entries)))}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No activity yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	max := len(entries)
	if opts.MaxRecent > 0 && opts.MaxRecent < max {
		max = opts.MaxRecent
	}

	for _, entry := range entries[:max] {
		lines = append(lines, fmt.Sprintf("%s %s",
			s.timestamp.Render(entry.Timestamp),
			entryStyle(entry.Severity, s).Render(entry.Message)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func entryStyle(severity domain.Severity, s styles) lipgloss.Style {
	switch severity {
	case domain.SeveritySuccess:
		return s.entrySuccess
	case domain.SeverityError:
		return s.entryError
	default:
		return s.entryInfo
	}
}
