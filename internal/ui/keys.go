package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Tab        key.Binding
	Enter      key.Binding
	Back       key.Binding
	Search     key.Binding
	URL        key.Binding
	Upload     key.Binding
	Dismiss    key.Binding
	Refresh    key.Binding
	Delete     key.Binding
	ClearAll   key.Binding
	Sort       key.Binding
	Filter     key.Binding
	TabPlayer  key.Binding
	TabHistory key.Binding
}

var Keys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search GIPHY")),
	URL:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "from URL")),
	Upload:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "upload file")),
	Dismiss:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ClearAll:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear all")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	TabPlayer:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "player")),
	TabHistory: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history")),
}
