package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tasktree/tasktree/internal/domain"
)

// statusColors maps each status to its display color.
var statusColors = map[domain.Status]lipgloss.Color{
	domain.StatusPending:    lipgloss.Color("#74B9FF"), // Light blue
	domain.StatusInProgress: lipgloss.Color("#FDCB6E"), // Yellow
	domain.StatusCompleted:  lipgloss.Color("#00B894"), // Green
}

var pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A29BFE"))

// renderStatus renders a status label with its color.
func renderStatus(s domain.Status) string {
	color, ok := statusColors[s]
	if !ok {
		return string(s)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}

// renderPath renders a hierarchical id for display.
func renderPath(path string) string {
	return pathStyle.Render(path)
}
