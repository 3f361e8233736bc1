package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles of the menus and status bar.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Best        lipgloss.Style
	Help        lipgloss.Style
	Border      lipgloss.Style
	Empty       lipgloss.Style
	Warning     lipgloss.Style
}

// NewStyles builds the styles with r, or the default renderer when nil.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:       r.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Subtitle:    r.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  r.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Best:        r.NewStyle().Foreground(lipgloss.Color("51")),
		Help:        r.NewStyle().Foreground(lipgloss.Color("241")),
		Border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
		Warning: r.NewStyle().Foreground(lipgloss.Color("208")),
	}
}
