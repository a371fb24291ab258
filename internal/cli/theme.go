package cli

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for terminal output.
type Theme struct {
	Answer lipgloss.Color
	Action lipgloss.Color
	Error  lipgloss.Color
	Hint   lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Answer: lipgloss.Color("#00D787"), // green
	Action: lipgloss.Color("#5FAFD7"), // light blue
	Error:  lipgloss.Color("#FF005F"), // red
	Hint:   lipgloss.Color("#6C6C6C"), // dim gray
}

func answerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Answer)
}

func actionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Action).Bold(true)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Error).Bold(true)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Hint).Italic(true)
}
