package playback

import "github.com/altinukshini/gif-ascii-tui/internal/model"

type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindFailed
	KindPlaying
	KindBrowsing
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindFailed:
		return "error"
	case KindPlaying:
		return "playing"
	case KindBrowsing:
		return "browsing"
	default:
		return "unknown"
	}
}

// State is the view state. Exactly one variant is active at a time; the
// unexported method keeps the set closed to this package.
type State interface {
	Kind() Kind
	isState()
}

type Idle struct{}

type Loading struct {
	Request Request
}

type Failed struct {
	Message string
}

type Playing struct {
	Result model.ConversionResult
	Frame  int
}

// CurrentFrame returns the text of the frame under the cursor.
func (p Playing) CurrentFrame() string {
	return p.Result.Frames[p.Frame]
}

type Browsing struct {
	Results []model.SearchResult
}

func (Idle) Kind() Kind     { return KindIdle }
func (Loading) Kind() Kind  { return KindLoading }
func (Failed) Kind() Kind   { return KindFailed }
func (Playing) Kind() Kind  { return KindPlaying }
func (Browsing) Kind() Kind { return KindBrowsing }

func (Idle) isState()     {}
func (Loading) isState()  {}
func (Failed) isState()   {}
func (Playing) isState()  {}
func (Browsing) isState() {}

type RequestKind int

const (
	RequestConvertURL RequestKind = iota
	RequestConvertFile
	RequestSearch
)

func (k RequestKind) String() string {
	switch k {
	case RequestConvertURL:
		return "convert-url"
	case RequestConvertFile:
		return "convert-file"
	case RequestSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Request describes one outbound call. Seq identifies it among all calls
// the controller has issued; only the latest may change state.
type Request struct {
	Seq    uint64
	Kind   RequestKind
	Source string // URL, local path or search term
}

func (r Request) IsConversion() bool {
	return r.Kind == RequestConvertURL || r.Kind == RequestConvertFile
}
