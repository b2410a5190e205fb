package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

var (
	ColorBorder  = lipgloss.Color("#475569")
	ColorTextDim = lipgloss.Color("#94a3b8")
	ColorRed     = lipgloss.Color("#f87171")
	ColorAccent  = lipgloss.Color("#e2e8f0")
)

type styles struct {
	title   lipgloss.Style
	cell    lipgloss.Style
	cursor  lipgloss.Style
	markX   lipgloss.Style
	markO   lipgloss.Style
	line    lipgloss.Style
	status  lipgloss.Style
	notice  lipgloss.Style
	err     lipgloss.Style
	banner  lipgloss.Style
	numbers lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder),
		cursor: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorAccent),
		markX:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.XColor)),
		markO:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.OColor)),
		line:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.LineColor)),
		status:  lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		notice:  lipgloss.NewStyle().Foreground(ColorTextDim).Italic(true),
		err:     lipgloss.NewStyle().Foreground(ColorRed),
		numbers: lipgloss.NewStyle().Foreground(ColorBorder),
		banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.LineColor)).
			Padding(0, 2),
	}
}
