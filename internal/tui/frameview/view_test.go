package frameview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
	"github.com/altinukshini/gif-ascii-tui/internal/playback"
)

func tallFrame(mark string, lines int) string {
	rows := make([]string, lines)
	for i := range rows {
		rows[i] = mark
	}
	return strings.Join(rows, "\n")
}

func TestSetFrameKeepsScrollOffset(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})

	res := model.ConversionResult{Frames: []string{tallFrame("a", 50), tallFrame("b", 50)}, Duration: 100}
	m.Reset(playback.Playing{Result: res})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.viewport.YOffset != 2 {
		t.Fatalf("YOffset = %d, want 2", m.viewport.YOffset)
	}

	m.SetFrame(playback.Playing{Result: res, Frame: 1})
	if m.viewport.YOffset != 2 {
		t.Errorf("YOffset = %d after frame change, want 2", m.viewport.YOffset)
	}
	if !strings.HasPrefix(m.Frame(), "b") {
		t.Errorf("frame = %q, want second frame", m.Frame()[:1])
	}

	m.Reset(playback.Playing{Result: res})
	if m.viewport.YOffset != 0 {
		t.Errorf("Reset should scroll to top, YOffset = %d", m.viewport.YOffset)
	}
}

func TestViewHeader(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m.SetSource("Cat")
	res := model.ConversionResult{Frames: []string{"x", "y", "z"}, Duration: 80}
	m.Reset(playback.Playing{Result: res, Frame: 2})

	view := m.View()
	for _, want := range []string{"Cat", "frame 3/3", "80ms", "z"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyView(t *testing.T) {
	if got := New().View(); got != "" {
		t.Errorf("View() = %q before any frame", got)
	}
}
