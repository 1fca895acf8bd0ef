package playback

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

// Timer is the handle of the running frame timer. The caller arms it for
// Interval and reports each firing back through Tick with the same ID.
type Timer struct {
	ID       uint64
	Interval time.Duration
}

// Controller owns the view state, the request sequence and the frame timer.
// It is not safe for concurrent use; callers drive it from a single loop.
type Controller struct {
	state  State
	seq    uint64 // latest issued request
	timer  uint64 // active timer ID, 0 when none
	timers uint64 // last timer ID handed out
	logger *slog.Logger
}

func New(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{state: Idle{}, logger: logger}
}

func (c *Controller) State() State { return c.state }

// ActiveTimer returns the running frame timer, if any.
func (c *Controller) ActiveTimer() (Timer, bool) {
	p, ok := c.state.(Playing)
	if !ok || c.timer == 0 {
		return Timer{}, false
	}
	return Timer{ID: c.timer, Interval: p.Result.Interval()}, true
}

// Pending returns the outstanding request, if any.
func (c *Controller) Pending() (Request, bool) {
	l, ok := c.state.(Loading)
	return l.Request, ok
}

// SubmitURL starts a conversion of the GIF at url. Empty input is ignored.
func (c *Controller) SubmitURL(url string) (Request, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Request{}, false
	}
	return c.begin(RequestConvertURL, url), true
}

// SubmitFile starts a conversion of a local file. An empty path means no
// file was selected and is ignored.
func (c *Controller) SubmitFile(path string) (Request, bool) {
	if strings.TrimSpace(path) == "" {
		return Request{}, false
	}
	return c.begin(RequestConvertFile, path), true
}

// Search starts a listing query. Empty terms are ignored.
func (c *Controller) Search(term string) (Request, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Request{}, false
	}
	return c.begin(RequestSearch, term), true
}

// SelectSearchResult converts a listed result exactly as if its full URL
// had been submitted.
func (c *Controller) SelectSearchResult(r model.SearchResult) (Request, bool) {
	return c.SubmitURL(r.URL)
}

// Play applies a successful conversion. It returns the newly started timer,
// or false when the response is stale or the result cannot be played.
func (c *Controller) Play(seq uint64, res model.ConversionResult) (Timer, bool) {
	req, ok := c.current(seq)
	if !ok || !req.IsConversion() {
		return Timer{}, false
	}
	if err := res.Validate(); err != nil {
		c.set(Failed{Message: fmt.Sprintf("Unexpected response from the conversion service: %v", err)})
		return Timer{}, false
	}

	c.set(Playing{Result: res})
	c.timers++
	c.timer = c.timers
	c.logger.Debug("timer started", "timer", c.timer, "frames", len(res.Frames), "interval", res.Interval())
	return Timer{ID: c.timer, Interval: res.Interval()}, true
}

// Fail applies a failed request. Stale failures are ignored.
func (c *Controller) Fail(seq uint64, message string) bool {
	if _, ok := c.current(seq); !ok {
		return false
	}
	c.set(Failed{Message: message})
	return true
}

// List applies a successful search listing. Stale listings are ignored.
func (c *Controller) List(seq uint64, results []model.SearchResult) bool {
	req, ok := c.current(seq)
	if !ok || req.Kind != RequestSearch {
		return false
	}
	c.set(Browsing{Results: results})
	return true
}

// Tick handles one firing of timer id. It reports whether the timer is still
// active and should be re-armed; firings of cancelled timers are dropped.
func (c *Controller) Tick(id uint64) bool {
	if id == 0 || id != c.timer {
		return false
	}
	p, ok := c.state.(Playing)
	if !ok {
		return false
	}
	p.Frame = (p.Frame + 1) % len(p.Result.Frames)
	c.state = p
	return true
}

// Dismiss returns to Idle and abandons any outstanding request.
func (c *Controller) Dismiss() {
	c.seq++
	c.set(Idle{})
}

func (c *Controller) begin(kind RequestKind, source string) Request {
	c.seq++
	req := Request{Seq: c.seq, Kind: kind, Source: source}
	c.set(Loading{Request: req})
	return req
}

// current returns the pending request if seq identifies it.
func (c *Controller) current(seq uint64) (Request, bool) {
	l, ok := c.state.(Loading)
	if !ok || seq != c.seq || l.Request.Seq != seq {
		c.logger.Debug("discarding stale response", "seq", seq, "latest", c.seq)
		return Request{}, false
	}
	return l.Request, true
}

// set is the only place the state changes. The frame timer is disarmed
// before the new state is installed.
func (c *Controller) set(s State) {
	if c.timer != 0 {
		c.logger.Debug("timer cancelled", "timer", c.timer)
		c.timer = 0
	}
	c.logger.Debug("state change", "from", c.state.Kind(), "to", s.Kind())
	c.state = s
}
