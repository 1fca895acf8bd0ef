package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/playback"
	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

func RenderHeader(host string, state playback.State, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" gif-ascii-tui | %s", host))

	kind := state.Kind().String()
	right := ui.StateIcon(kind) + " " + ui.StateStyle(kind).Render(stateSummary(state)+" ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorHighlight).
		Width(width).
		Render(left + padding + right)
}

func stateSummary(state playback.State) string {
	switch s := state.(type) {
	case playback.Loading:
		if s.Request.Kind == playback.RequestSearch {
			return "searching"
		}
		return "converting"
	case playback.Playing:
		return fmt.Sprintf("playing %d/%d", s.Frame+1, len(s.Result.Frames))
	case playback.Browsing:
		return fmt.Sprintf("%d results", len(s.Results))
	default:
		return state.Kind().String()
	}
}
