package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by the browser and the table printer
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Warning  lipgloss.Style
	Footnote lipgloss.Style
}

// DefaultStyles returns the default palette
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212")).Padding(0, 1),
		Blurred:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Footnote: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
