package resultsview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

type resultItem struct {
	result model.SearchResult
}

func (r resultItem) Title() string {
	return r.result.DisplayTitle()
}

func (r resultItem) Description() string {
	return ui.StyleMuted.Render(r.result.URL)
}

func (r resultItem) FilterValue() string {
	return r.result.Title + " " + r.result.ID
}

// Model lists the GIPHY candidates of the latest search.
type Model struct {
	list    list.Model
	results []model.SearchResult
	term    string
	width   int
	height  int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("result", "results")
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = ui.Keys.Filter
	l.DisableQuitKeybindings()

	return Model{list: l}
}

// SetResults replaces the listing. Results are never merged with an
// earlier search.
func (m *Model) SetResults(term string, results []model.SearchResult) tea.Cmd {
	m.term = term
	m.results = results
	m.list.ResetFilter()
	m.list.ResetSelected()
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{result: r}
	}
	return m.list.SetItems(items)
}

func (m Model) Len() int { return len(m.results) }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		// Reserve one line for the header.
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := fmt.Sprintf("  %d results for %q | enter: convert  f: filter  c: clear", len(m.results), m.term)
	return ui.StyleMuted.Render(header) + "\n" + m.list.View()
}

// SelectedResult returns the highlighted search result, or nil.
func (m Model) SelectedResult() *model.SearchResult {
	if item, ok := m.list.SelectedItem().(resultItem); ok {
		return &item.result
	}
	return nil
}

// IsFiltering returns true when the user is actively typing a filter.
func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}
