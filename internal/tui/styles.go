package tui

import (
	"github.com/charmbracelet/lipgloss"

	"todo/internal/service"
)

var swatches = map[service.Color]lipgloss.Color{
	service.ColorRed:    lipgloss.Color("#ef4444"),
	service.ColorOrange: lipgloss.Color("#f97316"),
	service.ColorYellow: lipgloss.Color("#eab308"),
	service.ColorGreen:  lipgloss.Color("#22c55e"),
	service.ColorBlue:   lipgloss.Color("#3b82f6"),
	service.ColorIndigo: lipgloss.Color("#6366f1"),
	service.ColorPurple: lipgloss.Color("#a855f7"),
	service.ColorPink:   lipgloss.Color("#ec4899"),
	service.ColorGray:   lipgloss.Color("#6b7280"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	statsStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	doneStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// dot renders a color swatch. Unknown colors render gray.
func dot(c service.Color) string {
	return lipgloss.NewStyle().Foreground(swatches[c.OrGray()]).Render("●")
}
