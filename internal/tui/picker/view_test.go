package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestOpenAndCancel(t *testing.T) {
	m := New(t.TempDir())
	if m.IsActive() {
		t.Fatal("picker should start closed")
	}
	if cmd := m.Open(); cmd == nil {
		t.Error("Open should read the directory")
	}
	if !m.IsActive() {
		t.Fatal("picker should be active after Open")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsActive() {
		t.Error("esc should close the picker")
	}
	res, ok := cmd().(ResultMsg)
	if !ok || res.Path != "" {
		t.Errorf("got %#v, want empty ResultMsg", cmd())
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New(t.TempDir())
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("closed picker should ignore keys")
	}
	if m.View() != "" {
		t.Error("closed picker should render nothing")
	}
}
