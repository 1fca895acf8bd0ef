package frameview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/playback"
	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

// Model shows the current frame of the playing animation in a scrollable
// viewport. Frames larger than the pane can be panned with the usual
// viewport keys; the offset is kept while frames advance.
type Model struct {
	viewport viewport.Model
	frame    string
	index    int
	count    int
	interval string
	source   string
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// SetSource records the label shown in the header for the current animation.
func (m *Model) SetSource(source string) {
	m.source = source
}

// Reset starts a new animation at the top of the viewport.
func (m *Model) Reset(p playback.Playing) {
	m.show(p)
	if m.ready {
		m.viewport.GotoTop()
	}
}

// SetFrame replaces the displayed frame while keeping the scroll position.
func (m *Model) SetFrame(p playback.Playing) {
	prevOffset := m.viewport.YOffset
	m.show(p)
	if !m.ready {
		return
	}
	maxOffset := m.viewport.TotalLineCount() - m.viewport.VisibleLineCount()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if prevOffset > maxOffset {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(prevOffset)
	}
}

func (m *Model) show(p playback.Playing) {
	m.frame = p.CurrentFrame()
	m.index = p.Frame
	m.count = len(p.Result.Frames)
	m.interval = p.Result.Interval().String()
	if m.ready {
		m.viewport.SetContent(ui.StyleFrame.Render(m.frame))
	}
}

func (m Model) Frame() string { return m.frame }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		const headerH = 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerH)
			m.ready = true
			if m.frame != "" {
				m.viewport.SetContent(ui.StyleFrame.Render(m.frame))
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerH
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.count == 0 {
		return ""
	}
	headerParts := fmt.Sprintf(" frame %d/%d  %s", m.index+1, m.count, m.interval)
	if m.source != "" {
		headerParts = fmt.Sprintf(" %s  |%s", m.source, headerParts)
	}
	hints := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(
		"  j/k:scroll  g/G:top/bot  c:clear")
	header := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(headerParts) + hints

	if !m.ready {
		return header + "\n" + m.frame
	}
	return header + "\n" + m.viewport.View()
}
