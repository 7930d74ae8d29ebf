package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the editor.
type Theme struct {
	Name string

	Text     string
	Muted    string
	Accent   string
	Selected string
	Border   string
	Success  string
	Warning  string
	Danger   string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Editing  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Selected)).Bold(true),
		Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
	}
}

var themes = []Theme{
	{
		Name:     "Midnight",
		Text:     "#d8dee9",
		Muted:    "#6b7589",
		Accent:   "#88c0d0",
		Selected: "#ebcb8b",
		Border:   "#4c566a",
		Success:  "#a3be8c",
		Warning:  "#ebcb8b",
		Danger:   "#bf616a",
	},
	{
		Name:     "Paper",
		Text:     "#2e3440",
		Muted:    "#7b8394",
		Accent:   "#005f87",
		Selected: "#af5f00",
		Border:   "#a8b0bd",
		Success:  "#2f7d32",
		Warning:  "#af5f00",
		Danger:   "#c62828",
	},
}

// GetTheme returns the theme with the given name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after current.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
