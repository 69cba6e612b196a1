package main

import "github.com/charmbracelet/lipgloss"

type browseStyles struct {
	Title    lipgloss.Style
	Input    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Rating   lipgloss.Style
}

type browsePalette struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
}

var (
	lightPalette = browsePalette{
		Primary: lipgloss.Color("#101F38"),
		Text:    lipgloss.Color("#101F38"),
		Muted:   lipgloss.Color("#6b7280"),
		Border:  lipgloss.Color("#dce0e5"),
		Accent:  lipgloss.Color("#b45309"),
	}
	darkPalette = browsePalette{
		Primary: lipgloss.Color("#8BC34A"),
		Text:    lipgloss.Color("#f2f2f2"),
		Muted:   lipgloss.Color("#8a94a6"),
		Border:  lipgloss.Color("#2a3850"),
		Accent:  lipgloss.Color("#FFC107"),
	}
	errorColor   = lipgloss.Color("#e53935")
	successColor = lipgloss.Color("#8BC34A")
)

func newBrowseStyles(dark bool) browseStyles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return browseStyles{
		Title: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Item:     lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Status:   lipgloss.NewStyle().Foreground(successColor),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Rating:   lipgloss.NewStyle().Foreground(p.Accent),
	}
}
