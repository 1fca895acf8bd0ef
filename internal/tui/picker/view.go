package picker

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

// AllowedTypes are the extensions the conversion service accepts for upload.
var AllowedTypes = []string{".gif", ".webp"}

// ResultMsg is emitted when the picker closes. Path is empty when the user
// cancelled without choosing a file.
type ResultMsg struct {
	Path string
}

// Model is the upload file picker overlay.
type Model struct {
	fp     filepicker.Model
	active bool
	notice string
	width  int
	height int
}

func New(dir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = AllowedTypes
	fp.AutoHeight = true
	fp.ShowPermissions = false
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "."
		}
	}
	fp.CurrentDirectory = dir
	return Model{fp: fp}
}

// Open activates the picker and starts reading its directory.
func (m *Model) Open() tea.Cmd {
	m.active = true
	m.notice = ""
	return m.fp.Init()
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Dir() string { return m.fp.CurrentDirectory }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		// Title and hint lines.
		size.Height -= 4
		var cmd tea.Cmd
		m.fp, cmd = m.fp.Update(size)
		return m, cmd
	}
	if !m.active {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			m.active = false
			return m, emitResult("")
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.active = false
		return m, emitResult(path)
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.notice = filepath.Base(path) + " is not a .gif or .webp file"
		return m, cmd
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).
		Render("Upload a GIF  " + ui.StyleMuted.Render(m.fp.CurrentDirectory))
	help := ui.StyleMuted.Render("enter/l: open  h/backspace: up  esc: cancel")
	body := title + "\n\n" + m.fp.View() + "\n" + help
	if m.notice != "" {
		body += "\n" + ui.StyleFailure.Render(m.notice)
	}
	return body
}

func emitResult(path string) tea.Cmd {
	return func() tea.Msg { return ResultMsg{Path: path} }
}
