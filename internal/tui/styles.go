package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED")
	colorDanger  = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleDegraded = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	// Table styles
	styleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	styleTableRow = lipgloss.NewStyle().
			Padding(0, 1)

	styleTableRowSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("#1F2937")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	styleDetailBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(16)

	styleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))
)

// tokenColors maps status color tokens onto terminal colors.
var tokenColors = map[string]lipgloss.Color{
	"slate":   lipgloss.Color("#64748B"),
	"orange":  lipgloss.Color("#F97316"),
	"cyan":    lipgloss.Color("#06B6D4"),
	"amber":   lipgloss.Color("#F59E0B"),
	"indigo":  lipgloss.Color("#6366F1"),
	"violet":  lipgloss.Color("#8B5CF6"),
	"red":     lipgloss.Color("#EF4444"),
	"emerald": lipgloss.Color("#10B981"),
	"green":   lipgloss.Color("#22C55E"),
	"teal":    lipgloss.Color("#14B8A6"),
	"sky":     lipgloss.Color("#0EA5E9"),
	"fuchsia": lipgloss.Color("#D946EF"),
}

// TokenColor resolves a color token, falling back to muted gray.
func TokenColor(token string) lipgloss.Color {
	if c, ok := tokenColors[token]; ok {
		return c
	}
	return colorMuted
}

// Badge renders text in the color of token.
func Badge(text, token string) string {
	return lipgloss.NewStyle().Foreground(TokenColor(token)).Bold(true).Render(text)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}
