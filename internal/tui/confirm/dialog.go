package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

// Action names the operation awaiting confirmation.
type Action int

const (
	ActionDeleteEntry Action = iota
	ActionClearHistory
)

type ResultMsg struct {
	Confirmed bool
	Action    Action
	Key       string // cache key for ActionDeleteEntry
}

type Model struct {
	Title   string
	Message string
	Action  Action
	Key     string
	active  bool
	yes     bool
}

func New(title, message string, action Action, key string) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		Key:     key,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m.close(true)
	case "n", "N", "esc":
		return m.close(false)
	case "enter":
		return m.close(m.yes)
	case "tab", "left", "right", "h", "l":
		m.yes = !m.yes
	}
	return m, nil
}

func (m Model) close(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	result := ResultMsg{Confirmed: confirmed, Action: m.Action, Key: m.Key}
	return m, func() tea.Msg { return result }
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(50)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(ui.ColorWarning).
		Render(m.Title)

	yesStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(ui.ColorMuted)
	noStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(ui.ColorMuted)
	selected := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#F9FAFB"))
	if m.yes {
		yesStyle = selected.Background(ui.ColorSuccess)
	} else {
		noStyle = selected.Background(ui.ColorFailure)
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/n to confirm, esc to cancel",
		title, m.Message,
		yesStyle.Render("Yes"), noStyle.Render("No"))

	return style.Render(content)
}
