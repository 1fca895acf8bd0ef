package playback

import (
	"testing"
	"time"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

func threeFrames() model.ConversionResult {
	return model.ConversionResult{Frames: []string{"f0", "f1", "f2"}, Duration: 100}
}

func mustPlay(t *testing.T, c *Controller, res model.ConversionResult) Timer {
	t.Helper()
	req, ok := c.SubmitURL("https://x/a.gif")
	if !ok {
		t.Fatal("SubmitURL returned no request")
	}
	timer, ok := c.Play(req.Seq, res)
	if !ok {
		t.Fatalf("Play did not start a timer, state = %v", c.State().Kind())
	}
	return timer
}

func TestFrameIndexWrapsAfterTicks(t *testing.T) {
	for n := 1; n <= 4; n++ {
		frames := make([]string, n)
		for i := range frames {
			frames[i] = "frame"
		}
		c := New(nil)
		timer := mustPlay(t, c, model.ConversionResult{Frames: frames, Duration: 40})

		for k := 1; k <= 3*n+1; k++ {
			if !c.Tick(timer.ID) {
				t.Fatalf("n=%d: tick %d reported inactive timer", n, k)
			}
			p := c.State().(Playing)
			if p.Frame != k%n {
				t.Fatalf("n=%d: after %d ticks frame = %d, want %d", n, k, p.Frame, k%n)
			}
		}
	}
}

// Simulates wall-clock time: a timer with interval D fires once per full D.
func TestPlaybackAfter250ms(t *testing.T) {
	c := New(nil)
	req, _ := c.SubmitURL("https://x/a.gif")
	timer, ok := c.Play(req.Seq, threeFrames())
	if !ok {
		t.Fatal("expected timer")
	}
	if timer.Interval != 100*time.Millisecond {
		t.Fatalf("Interval = %v", timer.Interval)
	}

	elapsed := 250 * time.Millisecond
	for next := timer.Interval; next <= elapsed; next += timer.Interval {
		c.Tick(timer.ID)
	}

	p := c.State().(Playing)
	if p.Frame != 2 {
		t.Errorf("frame = %d, want 2", p.Frame)
	}
	if p.CurrentFrame() != "f2" {
		t.Errorf("CurrentFrame() = %q, want f2", p.CurrentFrame())
	}
}

func TestEmptyInputIsNoop(t *testing.T) {
	c := New(nil)
	timer := mustPlay(t, c, threeFrames())
	before := c.State()

	if _, ok := c.SubmitURL(""); ok {
		t.Error("SubmitURL(\"\") should be a no-op")
	}
	if _, ok := c.SubmitURL("   "); ok {
		t.Error("SubmitURL(whitespace) should be a no-op")
	}
	if _, ok := c.Search(""); ok {
		t.Error("Search(\"\") should be a no-op")
	}
	if _, ok := c.SubmitFile(""); ok {
		t.Error("SubmitFile(\"\") should be a no-op")
	}

	if c.State().Kind() != before.Kind() {
		t.Errorf("state changed to %v", c.State().Kind())
	}
	if active, ok := c.ActiveTimer(); !ok || active.ID != timer.ID {
		t.Error("no-op submissions must not touch the running timer")
	}
}

func TestLoadingClearsPriorState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
	}{
		{
			name: "from playing",
			setup: func(c *Controller) {
				req, _ := c.SubmitURL("https://x/a.gif")
				c.Play(req.Seq, threeFrames())
			},
		},
		{
			name: "from error",
			setup: func(c *Controller) {
				req, _ := c.SubmitURL("https://x/a.gif")
				c.Fail(req.Seq, "boom")
			},
		},
		{
			name: "from browsing",
			setup: func(c *Controller) {
				req, _ := c.Search("cat")
				c.List(req.Seq, []model.SearchResult{{ID: "1", URL: "https://x/1.gif"}})
			},
		},
	}
	submits := map[string]func(c *Controller) (Request, bool){
		"url":    func(c *Controller) (Request, bool) { return c.SubmitURL("https://x/b.gif") },
		"file":   func(c *Controller) (Request, bool) { return c.SubmitFile("/tmp/b.gif") },
		"search": func(c *Controller) (Request, bool) { return c.Search("dog") },
	}
	for _, tt := range tests {
		for kind, submit := range submits {
			t.Run(tt.name+"/"+kind, func(t *testing.T) {
				c := New(nil)
				tt.setup(c)
				req, ok := submit(c)
				if !ok {
					t.Fatal("expected a request")
				}
				l, isLoading := c.State().(Loading)
				if !isLoading {
					t.Fatalf("state = %v, want loading", c.State().Kind())
				}
				if l.Request != req {
					t.Errorf("pending = %+v, want %+v", l.Request, req)
				}
				if _, ok := c.ActiveTimer(); ok {
					t.Error("loading must not keep a frame timer")
				}
			})
		}
	}
}

func TestNewSubmissionLeavesOneTimer(t *testing.T) {
	c := New(nil)
	first := mustPlay(t, c, threeFrames())
	second := mustPlay(t, c, model.ConversionResult{Frames: []string{"a", "b"}, Duration: 50})

	if first.ID == second.ID {
		t.Fatal("each playback must get a fresh timer")
	}
	if c.Tick(first.ID) {
		t.Error("tick from the cancelled timer should be dropped")
	}
	p := c.State().(Playing)
	if p.Frame != 0 {
		t.Errorf("stale tick advanced frame to %d", p.Frame)
	}
	active, ok := c.ActiveTimer()
	if !ok || active.ID != second.ID {
		t.Fatalf("active timer = %+v, want %d", active, second.ID)
	}
	if active.Interval != 50*time.Millisecond {
		t.Errorf("Interval = %v", active.Interval)
	}
	if !c.Tick(second.ID) {
		t.Error("current timer should stay active")
	}
}

func TestStaleResponseIgnored(t *testing.T) {
	c := New(nil)
	slow, _ := c.SubmitURL("https://x/slow.gif")
	fast, _ := c.SubmitURL("https://x/fast.gif")

	if _, ok := c.Play(fast.Seq, threeFrames()); !ok {
		t.Fatal("latest response should apply")
	}
	if _, ok := c.Play(slow.Seq, model.ConversionResult{Frames: []string{"old"}, Duration: 10}); ok {
		t.Error("earlier response must not overwrite newer state")
	}
	if c.Fail(slow.Seq, "late failure") {
		t.Error("stale failure must be ignored")
	}
	p, ok := c.State().(Playing)
	if !ok || p.Result.Frames[0] != "f0" {
		t.Errorf("state = %+v", c.State())
	}
}

func TestStaleSearchAfterConversion(t *testing.T) {
	c := New(nil)
	search, _ := c.Search("cat")
	conv, _ := c.SubmitURL("https://x/a.gif")

	if c.List(search.Seq, []model.SearchResult{{ID: "1"}}) {
		t.Error("stale search listing applied")
	}
	if _, ok := c.State().(Loading); !ok {
		t.Fatalf("state = %v, want loading", c.State().Kind())
	}
	if _, ok := c.Play(conv.Seq, threeFrames()); !ok {
		t.Error("current conversion should apply")
	}
}

func TestFailureMessage(t *testing.T) {
	c := New(nil)
	req, _ := c.SubmitURL("https://x/a.bmp")
	if !c.Fail(req.Seq, "unsupported format") {
		t.Fatal("Fail should apply")
	}
	f, ok := c.State().(Failed)
	if !ok || f.Message != "unsupported format" {
		t.Errorf("state = %+v", c.State())
	}
	if _, ok := c.ActiveTimer(); ok {
		t.Error("error state must not have a timer")
	}
}

func TestMalformedResultBecomesError(t *testing.T) {
	tests := []model.ConversionResult{
		{Duration: 100},
		{Frames: []string{"a"}, Duration: 0},
	}
	for _, res := range tests {
		c := New(nil)
		req, _ := c.SubmitURL("https://x/a.gif")
		if _, ok := c.Play(req.Seq, res); ok {
			t.Errorf("Play(%+v) started a timer", res)
		}
		if c.State().Kind() != KindFailed {
			t.Errorf("state = %v, want error", c.State().Kind())
		}
	}
}

func TestSearchEmptyListing(t *testing.T) {
	c := New(nil)
	req, _ := c.Search("cat")
	if !c.List(req.Seq, nil) {
		t.Fatal("List should apply")
	}
	b, ok := c.State().(Browsing)
	if !ok {
		t.Fatalf("state = %v, want browsing", c.State().Kind())
	}
	if len(b.Results) != 0 {
		t.Errorf("results = %d", len(b.Results))
	}
}

func TestSelectSearchResultMatchesSubmitURL(t *testing.T) {
	result := model.SearchResult{ID: "1", Title: "Cat", URL: "https://media.giphy.com/1.gif"}

	a := New(nil)
	viaSelect, ok := a.SelectSearchResult(result)
	if !ok {
		t.Fatal("expected request")
	}
	b := New(nil)
	viaURL, _ := b.SubmitURL(result.URL)

	if viaSelect != viaURL {
		t.Errorf("select = %+v, submit = %+v", viaSelect, viaURL)
	}
	if viaSelect.Kind != RequestConvertURL {
		t.Errorf("kind = %v", viaSelect.Kind)
	}
}

func TestPlayRejectsSearchRequest(t *testing.T) {
	c := New(nil)
	req, _ := c.Search("cat")
	if _, ok := c.Play(req.Seq, threeFrames()); ok {
		t.Error("a search request cannot complete as a conversion")
	}
	conv, _ := c.SubmitURL("https://x/a.gif")
	if c.List(conv.Seq, nil) {
		t.Error("a conversion request cannot complete as a listing")
	}
}

func TestDismissAbandonsPending(t *testing.T) {
	c := New(nil)
	req, _ := c.SubmitURL("https://x/a.gif")
	c.Dismiss()
	if c.State().Kind() != KindIdle {
		t.Fatalf("state = %v", c.State().Kind())
	}
	if _, ok := c.Play(req.Seq, threeFrames()); ok {
		t.Error("response for a dismissed request must be ignored")
	}
	if _, ok := c.Pending(); ok {
		t.Error("nothing should be pending")
	}
}

func TestDismissStopsTimer(t *testing.T) {
	c := New(nil)
	timer := mustPlay(t, c, threeFrames())
	c.Dismiss()
	if c.Tick(timer.ID) {
		t.Error("timer should be cancelled on leaving playback")
	}
}
