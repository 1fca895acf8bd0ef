package ui

import (
	"github.com/altinukshini/gif-ascii-tui/internal/cache"
	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

// Request completion messages. Seq is the controller sequence number the
// request was issued under.
type ConversionDoneMsg struct {
	Seq    uint64
	Result *model.ConversionResult
	Cached bool
	Err    error
}

type SearchDoneMsg struct {
	Seq     uint64
	Term    string
	Results []model.SearchResult
	Err     error
}

// FrameTickMsg is one firing of the frame timer identified by Timer.
type FrameTickMsg struct {
	Timer uint64
}

// History (result cache) messages
type HistoryLoadedMsg struct {
	Entries   []cache.Entry
	TotalSize int64
	Err       error
}

type HistoryDeletedMsg struct {
	Key string // empty when everything was cleared
	Err error
}

// SubmitMsg is emitted by the source form when the user submits a field.
type SubmitMsg struct {
	Kind  SourceKind
	Value string
}

type SourceKind int

const (
	SourceSearch SourceKind = iota
	SourceURL
	SourceFile
)

// ReplayMsg asks the app to convert a previously cached source again.
type ReplayMsg struct {
	SourceURL string
	Title     string
}

type StatusMsg struct {
	Text string
}
