package tui

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
			Bold(true)

	focusedLabelStyle = labelStyle.Copy().
				Foreground(lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#ff79c6"})

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#262626", Dark: "#d9d9d9"})

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}).
				Background(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"})

	// Unshipped orders are highlighted red.
	unshippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}).
			Bold(true)

	shippedStyle = cellStyle.Copy()

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}).
			Bold(true)
)

// GetAdaptiveStyles returns styles that adapt to terminal width
func GetAdaptiveStyles(width int) (titleStyle, formStyle, helpStyle lipgloss.Style) {
	maxWidth := width - 4 // Leave some margin

	adaptiveTitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
		Bold(true).
		Margin(1, 0, 1, 0)

	adaptiveFormStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
		Padding(1, 2).
		Margin(1, 0)

	adaptiveHelpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"}).
		Margin(1, 0, 0, 0)

	if maxWidth > 0 {
		adaptiveTitleStyle = adaptiveTitleStyle.Width(maxWidth)
		adaptiveFormStyle = adaptiveFormStyle.Width(maxWidth)
		adaptiveHelpStyle = adaptiveHelpStyle.Width(maxWidth)
	}

	return adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle
}
