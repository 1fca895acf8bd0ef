package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"

	"github.com/altinukshini/gif-ascii-tui/internal/api"
	"github.com/altinukshini/gif-ascii-tui/internal/config"
	"github.com/altinukshini/gif-ascii-tui/internal/tui"
)

func newPrintClient(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := api.NewClient(config.Config{APIURL: srv.URL, SearchLimit: 12, Timeout: 5 * time.Second}, api.Options{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestPrintFrames(t *testing.T) {
	client := newPrintClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"frames":["one","two"],"duration":50}`)
	})

	var out bytes.Buffer
	err := runPrint(&out, client, term.FromEnv(), tui.Startup{URL: "https://x/a.gif"}, 12)
	if err != nil {
		t.Fatalf("runPrint: %v", err)
	}
	if got, want := out.String(), "one\n\ntwo\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrintSearchTable(t *testing.T) {
	client := newPrintClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"abc","title":"Cat","url":"https://media.giphy.com/cat.gif","thumbnail_url":""}]`)
	})

	var out bytes.Buffer
	err := runPrint(&out, client, term.FromEnv(), tui.Startup{Search: "cat"}, 12)
	if err != nil {
		t.Fatalf("runPrint: %v", err)
	}
	for _, want := range []string{"abc", "Cat", "https://media.giphy.com/cat.gif"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintErrorDetail(t *testing.T) {
	client := newPrintClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail":"Invalid GIF URL"}`)
	})

	err := runPrint(&bytes.Buffer{}, client, term.FromEnv(), tui.Startup{URL: "nope"}, 12)
	if err == nil || err.Error() != "Invalid GIF URL" {
		t.Errorf("err = %v, want the backend detail", err)
	}
}

func TestPrintNeedsSource(t *testing.T) {
	client := newPrintClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if err := runPrint(&bytes.Buffer{}, client, term.FromEnv(), tui.Startup{}, 12); err == nil {
		t.Error("expected an error without a source")
	}
}
