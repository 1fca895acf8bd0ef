package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gif-ascii-tui/internal/api"
	"github.com/altinukshini/gif-ascii-tui/internal/cache"
	"github.com/altinukshini/gif-ascii-tui/internal/config"
	"github.com/altinukshini/gif-ascii-tui/internal/model"
	"github.com/altinukshini/gif-ascii-tui/internal/playback"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/confirm"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/frameview"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/historyview"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/picker"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/resultsview"
	"github.com/altinukshini/gif-ascii-tui/internal/tui/sourceform"
	"github.com/altinukshini/gif-ascii-tui/internal/ui"
)

// Placeholder is shown in the display area when nothing has been loaded.
const Placeholder = "Your ASCII art will appear here"

var errNoHistory = errors.New("result cache is disabled")

type Tab int

const (
	TabPlayer Tab = iota
	TabHistory
)

// Startup holds a submission to issue when the program starts.
type Startup struct {
	URL    string
	File   string
	Search string
}

type App struct {
	cfg     config.Config
	client  *api.Client
	results *cache.ResultCache // nil disables history
	ctrl    *playback.Controller
	logger  *slog.Logger
	startup Startup

	// Views
	form          sourceform.Model
	picker        picker.Model
	frameView     frameview.Model
	resultsView   resultsview.Model
	historyView   historyview.Model
	confirmDialog confirm.Model
	spinner       spinner.Model

	// titles remembers listing titles by URL so conversions started from a
	// search or from history keep a readable name.
	titles map[string]string

	// State
	currentTab Tab
	width      int
	height     int
	status     string
	showHelp   bool
}

func NewApp(cfg config.Config, client *api.Client, results *cache.ResultCache, logger *slog.Logger, startup Startup) App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleWarning

	form := sourceform.New()
	form.SetSearch(startup.Search)
	form.SetURL(startup.URL)

	startDir := ""
	if startup.File != "" {
		startDir = filepath.Dir(startup.File)
		form.SetFile(filepath.Base(startup.File))
	}

	return App{
		cfg:         cfg,
		client:      client,
		results:     results,
		ctrl:        playback.New(logger),
		logger:      logger,
		startup:     startup,
		form:        form,
		picker:      picker.New(startDir),
		frameView:   frameview.New(),
		resultsView: resultsview.New(),
		historyView: historyview.New(),
		spinner:     sp,
		titles:      make(map[string]string),
		currentTab:  TabPlayer,
		status:      "Ready",
	}
}

// Controller exposes the playback controller driving the display.
func (a App) Controller() *playback.Controller { return a.ctrl }

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadHistory()}
	switch {
	case a.startup.Search != "":
		if req, ok := a.ctrl.Search(a.startup.Search); ok {
			cmds = append(cmds, a.spinner.Tick, a.search(req))
		}
	case a.startup.URL != "":
		if req, ok := a.ctrl.SubmitURL(a.startup.URL); ok {
			cmds = append(cmds, a.spinner.Tick, a.convert(req))
		}
	case a.startup.File != "":
		if req, ok := a.ctrl.SubmitFile(a.startup.File); ok {
			cmds = append(cmds, a.spinner.Tick, a.convert(req))
		}
	}
	return tea.Batch(cmds...)
}

// --- Commands ---

// convert runs a conversion request. URL sources are served from the result
// cache when possible and stored there after a successful call.
func (a App) convert(req playback.Request) tea.Cmd {
	client, results, logger := a.client, a.results, a.logger
	title := a.titles[req.Source]
	return func() tea.Msg {
		start := time.Now()
		if req.Kind == playback.RequestConvertURL && results != nil {
			if res, err := results.Get(req.Source); err == nil {
				logger.Info("conversion served from cache", "seq", req.Seq, "source", req.Source)
				return ui.ConversionDoneMsg{Seq: req.Seq, Result: res, Cached: true}
			}
		}

		var (
			res *model.ConversionResult
			err error
		)
		ctx := context.Background()
		if req.Kind == playback.RequestConvertFile {
			res, err = client.ConvertFile(ctx, req.Source)
		} else {
			res, err = client.ConvertURL(ctx, req.Source)
		}
		if err != nil {
			logger.Warn("conversion failed", "seq", req.Seq, "source", req.Source, "err", err)
			return ui.ConversionDoneMsg{Seq: req.Seq, Err: err}
		}
		logger.Info("conversion finished",
			"seq", req.Seq,
			"source", req.Source,
			"frames", len(res.Frames),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)

		if req.Kind == playback.RequestConvertURL && results != nil && res.Validate() == nil {
			if err := results.Store(req.Source, title, *res); err != nil {
				logger.Warn("storing conversion failed", "source", req.Source, "err", err)
			}
		}
		return ui.ConversionDoneMsg{Seq: req.Seq, Result: res}
	}
}

func (a App) search(req playback.Request) tea.Cmd {
	client, logger := a.client, a.logger
	query := api.SearchQuery{Term: req.Source, Limit: a.cfg.SearchLimit}
	return func() tea.Msg {
		results, err := client.Search(context.Background(), query)
		if err != nil {
			logger.Warn("search failed", "seq", req.Seq, "term", req.Source, "err", err)
			return ui.SearchDoneMsg{Seq: req.Seq, Term: req.Source, Err: err}
		}
		logger.Info("search finished", "seq", req.Seq, "term", req.Source, "results", len(results))
		return ui.SearchDoneMsg{Seq: req.Seq, Term: req.Source, Results: results}
	}
}

// frameTick arms the frame timer. The tick carries the timer ID so firings of
// a replaced timer are recognised and dropped.
func frameTick(t playback.Timer) tea.Cmd {
	return tea.Tick(t.Interval, func(time.Time) tea.Msg {
		return ui.FrameTickMsg{Timer: t.ID}
	})
}

func (a App) loadHistory() tea.Cmd {
	results := a.results
	return func() tea.Msg {
		if results == nil {
			return ui.HistoryLoadedMsg{Err: errNoHistory}
		}
		entries, err := results.ListEntries()
		if err != nil {
			return ui.HistoryLoadedMsg{Err: err}
		}
		var total int64
		for _, e := range entries {
			total += e.Size
		}
		return ui.HistoryLoadedMsg{Entries: entries, TotalSize: total}
	}
}

func (a App) deleteHistoryEntry(key string) tea.Cmd {
	results := a.results
	return func() tea.Msg {
		return ui.HistoryDeletedMsg{Key: key, Err: results.DeleteEntry(key)}
	}
}

func (a App) clearHistory() tea.Cmd {
	results := a.results
	return func() tea.Msg {
		return ui.HistoryDeletedMsg{Err: results.DeleteAll()}
	}
}

// submit hands a user submission to the controller and starts the request.
// Empty input leaves everything unchanged.
func (a *App) submit(kind ui.SourceKind, value string) tea.Cmd {
	var (
		req playback.Request
		ok  bool
	)
	switch kind {
	case ui.SourceSearch:
		req, ok = a.ctrl.Search(value)
	case ui.SourceURL:
		req, ok = a.ctrl.SubmitURL(value)
	case ui.SourceFile:
		req, ok = a.ctrl.SubmitFile(value)
	}
	if !ok {
		return nil
	}
	return a.start(req)
}

func (a *App) start(req playback.Request) tea.Cmd {
	a.currentTab = TabPlayer
	a.logger.Debug("request issued", "seq", req.Seq, "kind", req.Kind, "source", req.Source)
	if req.Kind == playback.RequestSearch {
		a.status = fmt.Sprintf("Searching GIPHY for %q...", req.Source)
		return tea.Batch(a.spinner.Tick, a.search(req))
	}
	a.status = fmt.Sprintf("Converting %s...", a.sourceLabel(req))
	return tea.Batch(a.spinner.Tick, a.convert(req))
}

func (a App) sourceLabel(req playback.Request) string {
	if title := a.titles[req.Source]; title != "" {
		return title
	}
	if req.Kind == playback.RequestConvertFile {
		return filepath.Base(req.Source)
	}
	return req.Source
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Confirm dialog result (arrives after the dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed && a.results != nil {
			switch result.Action {
			case confirm.ActionDeleteEntry:
				a.status = "Deleting conversion..."
				cmds = append(cmds, a.deleteHistoryEntry(result.Key))
			case confirm.ActionClearHistory:
				a.status = "Clearing history..."
				cmds = append(cmds, a.clearHistory())
			}
		}
		return &a, tea.Batch(cmds...)
	}

	if _, isKey := msg.(tea.KeyMsg); isKey && a.confirmDialog.IsActive() {
		var cmd tea.Cmd
		a.confirmDialog, cmd = a.confirmDialog.Update(msg)
		return &a, cmd
	}

	// Keys go to whichever input currently owns them, skipping the
	// app-level handlers (quit, tab switching, etc.)
	if _, isKey := msg.(tea.KeyMsg); isKey {
		var cmd tea.Cmd
		switch {
		case a.showHelp:
			a.showHelp = false
			return &a, nil
		case a.picker.IsActive():
			a.picker, cmd = a.picker.Update(msg)
			return &a, cmd
		case a.currentTab == TabPlayer && a.form.IsEditing():
			a.form, cmd = a.form.Update(msg)
			return &a, cmd
		case a.currentTab == TabPlayer && a.resultsView.IsFiltering():
			a.resultsView, cmd = a.resultsView.Update(msg)
			return &a, cmd
		case a.currentTab == TabHistory && a.historyView.IsFiltering():
			a.historyView, cmd = a.historyView.Update(msg)
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case ui.SubmitMsg:
		cmds = append(cmds, a.submit(msg.Kind, msg.Value))

	case sourceform.OpenPickerMsg:
		cmds = append(cmds, a.picker.Open())

	case picker.ResultMsg:
		if msg.Path != "" {
			a.form.SetFile(filepath.Base(msg.Path))
			cmds = append(cmds, a.submit(ui.SourceFile, msg.Path))
		}

	case ui.ReplayMsg:
		if msg.Title != "" {
			a.titles[msg.SourceURL] = msg.Title
		}
		a.form.SetURL(msg.SourceURL)
		cmds = append(cmds, a.submit(ui.SourceURL, msg.SourceURL))

	case ui.ConversionDoneMsg:
		cmds = append(cmds, a.applyConversion(msg))

	case ui.SearchDoneMsg:
		if msg.Err != nil {
			if a.ctrl.Fail(msg.Seq, api.Message(msg.Err, api.SearchFallback)) {
				a.status = "Search failed"
			}
			break
		}
		if a.ctrl.List(msg.Seq, msg.Results) {
			for _, r := range msg.Results {
				a.titles[r.URL] = r.DisplayTitle()
			}
			cmds = append(cmds, a.resultsView.SetResults(msg.Term, msg.Results))
			a.status = fmt.Sprintf("%d results for %q", len(msg.Results), msg.Term)
		}

	case ui.FrameTickMsg:
		if a.ctrl.Tick(msg.Timer) {
			if p, ok := a.ctrl.State().(playback.Playing); ok {
				a.frameView.SetFrame(p)
			}
			if t, ok := a.ctrl.ActiveTimer(); ok {
				cmds = append(cmds, frameTick(t))
			}
		}
		return &a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if a.ctrl.State().Kind() == playback.KindLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ui.HistoryDeletedMsg:
		switch {
		case msg.Err != nil:
			a.status = fmt.Sprintf("Error deleting: %v", msg.Err)
		case msg.Key == "":
			a.status = "History cleared"
		default:
			a.status = "Conversion deleted"
		}
		cmds = append(cmds, a.loadHistory())

	case ui.StatusMsg:
		a.status = msg.Text
	}

	// Propagate non-key messages to sub-views that own async state
	// (list filtering, history loading, picker directory reads).
	if a.picker.IsActive() {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	a.resultsView, cmd = a.resultsView.Update(msg)
	cmds = append(cmds, cmd)
	a.historyView, cmd = a.historyView.Update(msg)
	cmds = append(cmds, cmd)

	return &a, tea.Batch(cmds...)
}

func (a *App) applyConversion(msg ui.ConversionDoneMsg) tea.Cmd {
	if msg.Err != nil {
		if a.ctrl.Fail(msg.Seq, api.Message(msg.Err, api.ConvertFallback)) {
			a.status = "Conversion failed"
		}
		return nil
	}

	pending, _ := a.ctrl.Pending()
	var res model.ConversionResult
	if msg.Result != nil {
		res = *msg.Result
	}
	timer, ok := a.ctrl.Play(msg.Seq, res)
	if !ok {
		if a.ctrl.State().Kind() == playback.KindFailed {
			a.status = "Conversion failed"
		}
		return nil
	}

	p := a.ctrl.State().(playback.Playing)
	a.frameView.SetSource(a.sourceLabel(pending))
	a.frameView.Reset(p)
	a.status = fmt.Sprintf("Playing %d frames at %s", len(res.Frames), res.Interval())
	if msg.Cached {
		a.status += " (cached)"
	}
	return tea.Batch(frameTick(timer), a.loadHistory())
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return &a, tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return &a, nil
	case key.Matches(msg, ui.Keys.TabPlayer):
		a.currentTab = TabPlayer
		return &a, nil
	case key.Matches(msg, ui.Keys.TabHistory):
		a.currentTab = TabHistory
		return &a, nil
	case key.Matches(msg, ui.Keys.Tab):
		a.currentTab = (a.currentTab + 1) % 2
		return &a, nil
	}

	if a.currentTab == TabHistory {
		return a.handleHistoryKey(msg)
	}
	return a.handlePlayerKey(msg)
}

func (a App) handlePlayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := a.ctrl.State()

	switch {
	case key.Matches(msg, ui.Keys.Search):
		return &a, a.form.FocusSearch()
	case key.Matches(msg, ui.Keys.URL):
		return &a, a.form.FocusURL()
	case key.Matches(msg, ui.Keys.Upload):
		return &a, a.picker.Open()
	case key.Matches(msg, ui.Keys.Dismiss), key.Matches(msg, ui.Keys.Back):
		if state.Kind() != playback.KindIdle {
			a.ctrl.Dismiss()
			a.status = "Ready"
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.Enter):
		if state.Kind() == playback.KindBrowsing {
			if r := a.resultsView.SelectedResult(); r != nil {
				if req, ok := a.ctrl.SelectSearchResult(*r); ok {
					return &a, a.start(req)
				}
			}
		}
		return &a, nil
	}

	var cmd tea.Cmd
	switch state.Kind() {
	case playback.KindPlaying:
		a.frameView, cmd = a.frameView.Update(msg)
	case playback.KindBrowsing:
		a.resultsView, cmd = a.resultsView.Update(msg)
	}
	return &a, cmd
}

func (a App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Enter):
		if e := a.historyView.SelectedEntry(); e != nil {
			entry := *e
			return &a, func() tea.Msg {
				return ui.ReplayMsg{SourceURL: entry.SourceURL, Title: entry.Title}
			}
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.Refresh):
		a.status = "Loading history..."
		return &a, a.loadHistory()
	case key.Matches(msg, ui.Keys.Delete):
		if e := a.historyView.SelectedEntry(); e != nil && a.results != nil {
			name := e.Title
			if name == "" {
				name = e.SourceURL
			}
			a.confirmDialog = confirm.New(
				"Delete conversion",
				fmt.Sprintf("Remove %s from history?", name),
				confirm.ActionDeleteEntry, e.Key)
		}
		return &a, nil
	case key.Matches(msg, ui.Keys.ClearAll):
		if a.historyView.Len() > 0 && a.results != nil {
			a.confirmDialog = confirm.New(
				"Clear history",
				fmt.Sprintf("Remove all %d cached conversions?", a.historyView.Len()),
				confirm.ActionClearHistory, "")
		}
		return &a, nil
	}

	var cmd tea.Cmd
	a.historyView, cmd = a.historyView.Update(msg)
	return &a, cmd
}

func (a *App) propagateSize() {
	// header(1) + tabs(1) + status(1) + pane border(2)
	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}
	innerW := a.width - 4
	if innerW < 1 {
		innerW = 1
	}

	// The player pane stacks the source form and a separator above the
	// display area.
	displayH := contentH - a.form.Height() - 1
	if displayH < 1 {
		displayH = 1
	}

	a.form.SetWidth(innerW)
	a.frameView, _ = a.frameView.Update(tea.WindowSizeMsg{Width: innerW, Height: displayH})
	a.resultsView, _ = a.resultsView.Update(tea.WindowSizeMsg{Width: innerW, Height: displayH})
	a.historyView, _ = a.historyView.Update(tea.WindowSizeMsg{Width: innerW, Height: contentH})
	a.picker, _ = a.picker.Update(tea.WindowSizeMsg{Width: innerW, Height: contentH})
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.cfg.Host(), a.ctrl.State(), a.width)
	tabs := a.renderTabs()

	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}
	style := ui.StylePaneFocused.Width(a.width - 2).Height(contentH)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.confirmDialog.IsActive():
		content = a.confirmDialog.View()
	case a.picker.IsActive():
		content = style.Render(a.picker.View())
	case a.currentTab == TabHistory:
		content = style.Render(a.historyView.View())
	default:
		content = style.Render(a.form.View() + "\n\n" + a.renderDisplay())
	}

	statusBar := RenderStatusBar(a.status, a.contextHints(), a.width)

	// header(1) + tabs(1) + statusbar(1) = 3 lines of chrome.
	maxContentLines := a.height - 3
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + tabs + "\n" + content + "\n" + statusBar
}

// renderDisplay renders the display area for the current view state.
func (a App) renderDisplay() string {
	switch s := a.ctrl.State().(type) {
	case playback.Loading:
		return "  " + a.spinner.View() + " Loading..."
	case playback.Failed:
		return "  " + ui.StyleFailure.Bold(true).Render("Error:") + " " + ui.StyleFailure.Render(s.Message)
	case playback.Playing:
		return a.frameView.View()
	case playback.Browsing:
		if len(s.Results) == 0 {
			return "  " + ui.StyleMuted.Render(Placeholder)
		}
		return a.resultsView.View()
	default:
		return "  " + ui.StyleMuted.Render(Placeholder)
	}
}

func (a App) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Padding(0, 2)
	activeTab := tabStyle.Bold(true).Foreground(ui.ColorPrimary)
	inactiveTab := tabStyle.Foreground(ui.ColorMuted)

	playerLabel := "[1] Player"
	historyLabel := "[2] History"
	if n := a.historyView.Len(); n > 0 {
		historyLabel = fmt.Sprintf("[2] History (%d)", n)
	}

	playerTab := inactiveTab.Render(playerLabel)
	historyTab := inactiveTab.Render(historyLabel)
	if a.currentTab == TabHistory {
		historyTab = activeTab.Render(historyLabel)
	} else {
		playerTab = activeTab.Render(playerLabel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, playerTab, historyTab)
}

func (a App) contextHints() string {
	if a.picker.IsActive() {
		return "enter:select  h:up  esc:cancel"
	}
	if a.currentTab == TabHistory {
		return "enter:replay  d:delete  x:clear all  s:sort  r:refresh  f:filter  ?:help"
	}
	if a.form.IsEditing() {
		return "enter:submit  tab:next field  esc:cancel"
	}
	switch a.ctrl.State().Kind() {
	case playback.KindPlaying:
		return "j/k:scroll  c:clear  /:search  u:url  o:upload  ?:help"
	case playback.KindBrowsing:
		return "enter:convert  f:filter  c:clear  /:search  ?:help"
	case playback.KindFailed:
		return "c:dismiss  /:search  u:url  o:upload  ?:help"
	}
	return "/:search  u:url  o:upload  ?:help  q:quit"
}

func (a App) renderHelp() string {
	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}

	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("1 / 2", "Switch tab: Player, History"))
	b.WriteString(row("tab", "Next tab"))
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("q", "Quit"))

	b.WriteString("\n" + bold.Render("  Player") + "\n\n")
	b.WriteString(row("/", "Search GIPHY"))
	b.WriteString(row("u", "Convert from URL"))
	b.WriteString(row("o", "Upload a .gif or .webp file"))
	b.WriteString(row("enter", "Submit field / convert selected result"))
	b.WriteString(row("c / esc", "Clear the display"))
	b.WriteString(row("f", "Filter search results"))
	b.WriteString(row("g / G", "Frame top / bottom"))

	b.WriteString("\n" + bold.Render("  History") + "\n\n")
	b.WriteString(row("enter", "Replay conversion"))
	b.WriteString(row("s", "Cycle sort mode (last played / converted / size)"))
	b.WriteString(row("d", "Delete conversion"))
	b.WriteString(row("x", "Clear all"))
	b.WriteString(row("r", "Refresh"))

	b.WriteString("\n" + ui.StyleMuted.Render("  Press any key to close") + "\n")

	style := ui.StylePaneFocused.Width(a.width - 2).Height(contentH)
	return style.Render(b.String())
}
