package historyview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/gif-ascii-tui/internal/cache"
	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

type historyItem struct {
	entry cache.Entry
}

func (h historyItem) Title() string {
	title := h.entry.Title
	if title == "" {
		title = h.entry.SourceURL
	}
	size := ui.StyleWarning.Render(FormatSize(h.entry.Size))
	return fmt.Sprintf("%s  %s", title, size)
}

func (h historyItem) Description() string {
	parts := []string{}
	if h.entry.FrameCount > 0 {
		parts = append(parts, ui.StyleInfo.Render(fmt.Sprintf("%d frames @ %dms", h.entry.FrameCount, h.entry.Duration)))
	}
	if !h.entry.StoredAt.IsZero() {
		parts = append(parts, ui.StyleMuted.Render("converted "+RelativeTime(h.entry.StoredAt)))
	}
	if !h.entry.LastAccessed.IsZero() {
		parts = append(parts, ui.StyleMuted.Render("played "+RelativeTime(h.entry.LastAccessed)))
	}
	return strings.Join(parts, "  ")
}

func (h historyItem) FilterValue() string {
	return h.entry.Title + " " + h.entry.SourceURL
}

// SortMode determines how history entries are ordered.
type SortMode int

const (
	SortByAccessed SortMode = iota
	SortByStored
	SortBySize
)

func (s SortMode) String() string {
	switch s {
	case SortByStored:
		return "converted"
	case SortBySize:
		return "size"
	default:
		return "last played"
	}
}

// Model lists the conversions held in the result cache.
type Model struct {
	list      list.Model
	entries   []cache.Entry
	sortMode  SortMode
	totalSize int64
	width     int
	height    int
	loading   bool
	err       error
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("conversion", "conversions")
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = ui.Keys.Filter
	l.DisableQuitKeybindings()

	return Model{list: l, loading: true}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.HistoryLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.entries = msg.Entries
		m.totalSize = msg.TotalSize
		m.sortEntries()
		return m, m.list.SetItems(m.buildItems())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, ui.Keys.Sort) && !m.IsFiltering() {
			m.sortMode = (m.sortMode + 1) % 3
			m.sortEntries()
			return m, m.list.SetItems(m.buildItems())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading history..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press r to retry.", m.err)
	}
	if len(m.entries) == 0 {
		return "\n  No conversions yet.\n\n  Converted URLs are kept here for replay."
	}

	header := fmt.Sprintf("  %d conversions | Total: %s | Sort: %s | enter: replay  s: sort  d: delete  x: clear all",
		len(m.entries),
		FormatSize(m.totalSize),
		m.sortMode.String(),
	)
	return ui.StyleMuted.Render(header) + "\n" + m.list.View()
}

// SelectedEntry returns the highlighted history entry, or nil.
func (m Model) SelectedEntry() *cache.Entry {
	if item, ok := m.list.SelectedItem().(historyItem); ok {
		return &item.entry
	}
	return nil
}

func (m Model) Len() int { return len(m.entries) }

func (m Model) SortMode() SortMode { return m.sortMode }

// IsFiltering returns true when the user is actively typing a filter.
func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) sortEntries() {
	switch m.sortMode {
	case SortByAccessed:
		sort.SliceStable(m.entries, func(i, j int) bool {
			return m.entries[i].LastAccessed.After(m.entries[j].LastAccessed)
		})
	case SortByStored:
		sort.SliceStable(m.entries, func(i, j int) bool {
			return m.entries[i].StoredAt.After(m.entries[j].StoredAt)
		})
	case SortBySize:
		sort.SliceStable(m.entries, func(i, j int) bool {
			return m.entries[i].Size > m.entries[j].Size
		})
	}
}

func (m Model) buildItems() []list.Item {
	items := make([]list.Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = historyItem{entry: e}
	}
	return items
}

// FormatSize formats a byte count into a human-readable string.
func FormatSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// RelativeTime returns a human-readable relative time string.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
