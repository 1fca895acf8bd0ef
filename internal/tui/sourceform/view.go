package sourceform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

// OpenPickerMsg asks the parent to open the upload file picker.
type OpenPickerMsg struct{}

type field int

const (
	fieldSearch field = iota
	fieldURL
	fieldUpload
	fieldCount
)

// Model is the source form shown above the display area: a GIPHY search
// field, a GIF URL field and the upload action.
type Model struct {
	focused field
	editing bool
	search  textinput.Model
	url     textinput.Model
	file    string // last uploaded file, shown next to the action
	width   int
}

func New() Model {
	search := textinput.New()
	search.Placeholder = "e.g. funny cat"
	search.CharLimit = 256
	search.Width = 40

	url := textinput.New()
	url.Placeholder = "https://media.giphy.com/media/.../giphy.gif"
	url.CharLimit = 2048
	url.Width = 40

	return Model{search: search, url: url}
}

// FocusSearch starts editing the search field.
func (m *Model) FocusSearch() tea.Cmd {
	return m.focus(fieldSearch)
}

// FocusURL starts editing the URL field.
func (m *Model) FocusURL() tea.Cmd {
	return m.focus(fieldURL)
}

func (m *Model) focus(f field) tea.Cmd {
	m.blurTextInputs()
	m.focused = f
	m.editing = true
	m.focusCurrentTextInput()
	return textinput.Blink
}

// IsEditing reports whether key input belongs to the form.
func (m Model) IsEditing() bool { return m.editing }

func (m *Model) SetFile(path string) { m.file = path }

// SetSearch and SetURL prefill the fields, for example from startup flags.
func (m *Model) SetSearch(term string) { m.search.SetValue(term) }
func (m *Model) SetURL(url string)     { m.url.SetValue(url) }

func (m *Model) SetWidth(w int) {
	m.width = w
	inputW := w - 20
	if inputW < 10 {
		inputW = 10
	}
	m.search.Width = inputW
	m.url.Width = inputW
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles keys while the form is being edited.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.editing {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.blurTextInputs()
		m.editing = false
		return m, nil
	case "tab", "down":
		m.blurTextInputs()
		m.moveFocus(1)
		m.focusCurrentTextInput()
		return m, nil
	case "shift+tab", "up":
		m.blurTextInputs()
		m.moveFocus(-1)
		m.focusCurrentTextInput()
		return m, nil
	case "enter":
		return m.submit()
	}

	if m.focused == fieldUpload {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focused == fieldSearch {
		m.search, cmd = m.search.Update(keyMsg)
	} else {
		m.url, cmd = m.url.Update(keyMsg)
	}
	return m, cmd
}

// submit leaves edit mode and emits the focused field's value. The field
// keeps its text so the same source can be resubmitted.
func (m Model) submit() (Model, tea.Cmd) {
	m.blurTextInputs()
	m.editing = false
	switch m.focused {
	case fieldSearch:
		return m, emit(ui.SubmitMsg{Kind: ui.SourceSearch, Value: strings.TrimSpace(m.search.Value())})
	case fieldURL:
		return m, emit(ui.SubmitMsg{Kind: ui.SourceURL, Value: strings.TrimSpace(m.url.Value())})
	default:
		return m, emit(OpenPickerMsg{})
	}
}

func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Width(14).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(14).Bold(true).Foreground(ui.ColorPrimary)
	actionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))

	rows := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		ls := labelStyle
		if m.editing && f == m.focused {
			ls = focusedLabelStyle
		}

		var label, value string
		switch f {
		case fieldSearch:
			label = "Search GIPHY:"
			value = m.search.View()
		case fieldURL:
			label = "GIF URL:"
			value = m.url.View()
		case fieldUpload:
			label = "Upload:"
			value = actionStyle.Render("choose a .gif or .webp file")
			if m.file != "" {
				value += ui.StyleMuted.Render("  (last: " + m.file + ")")
			}
		}

		cursor := "  "
		if m.editing && f == m.focused {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(label), value))
	}
	return strings.Join(rows, "\n")
}

// Height is the number of lines View renders.
func (m Model) Height() int { return int(fieldCount) }

func (m *Model) moveFocus(delta int) {
	next := int(m.focused) + delta
	if next < 0 {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = 0
	}
	m.focused = field(next)
}

func (m *Model) blurTextInputs() {
	m.search.Blur()
	m.url.Blur()
}

func (m *Model) focusCurrentTextInput() {
	switch m.focused {
	case fieldSearch:
		m.search.Focus()
	case fieldURL:
		m.url.Focus()
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
