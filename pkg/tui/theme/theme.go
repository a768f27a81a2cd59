package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title  lipgloss.Style
	Marker lipgloss.Style
	Button lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			Padding(0, 1),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
