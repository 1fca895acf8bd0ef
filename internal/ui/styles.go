package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleFrame = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))
)

// StateStyle colours the state label shown in the header.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "playing":
		return StyleSuccess
	case "error":
		return StyleFailure
	case "loading":
		return StyleWarning
	case "browsing":
		return StyleInfo
	default:
		return StyleMuted
	}
}

func StateIcon(state string) string {
	switch state {
	case "playing":
		return StyleSuccess.Render(">")
	case "error":
		return StyleFailure.Render("X")
	case "loading":
		return StyleWarning.Render("*")
	case "browsing":
		return StyleInfo.Render("#")
	default:
		return StyleMuted.Render("o")
	}
}
