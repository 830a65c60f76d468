// Package summary prints the dashboard's headline numbers in a terminal.
package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aging-dashboard/internal/format"
	"aging-dashboard/internal/model"
)

var accents = []lipgloss.Color{"#2563eb", "#f97316", "#ef4444", "#9333ea"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	growthStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Width(30)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).MarginTop(1)
)

func cardStyle(accent lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(26)
}

// Render lays out the metric cards side by side, followed by the target
// groups and the data source.
func Render(view *model.View) string {
	cards := make([]string, 0, len(view.Cards))
	for i, c := range view.Cards {
		accent := accents[i%len(accents)]
		note := noteStyle.Render(c.Note)
		if c.Growth {
			note = growthStyle.Render(c.Note)
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(c.Label),
			lipgloss.NewStyle().Bold(true).Foreground(accent).Render(c.Value),
			note,
		)
		cards = append(cards, cardStyle(accent).Render(body))
	}

	var groups strings.Builder
	for _, g := range view.TargetGroups {
		fmt.Fprintf(&groups, "%s %12s  %s\n", nameStyle.Render(g.Name), format.Grouped(format.Round(g.Value)), format.Share(g.Percent))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Stárnutí populace ČR"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		labelStyle.Render("Cílová skupina (2024)"),
		strings.TrimRight(groups.String(), "\n"),
		footerStyle.Render(fmt.Sprintf("Zdroj: %s · %s", view.Metadata.Source, view.Metadata.Generated)),
	)
}
