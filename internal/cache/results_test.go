package cache

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

func TestStoreAndGet(t *testing.T) {
	rc, err := NewResultCache(t.TempDir(), 10, time.Hour)
	if err != nil {
		t.Fatalf("NewResultCache: %v", err)
	}

	url := "https://media.giphy.com/cat.gif"
	if rc.Has(url) {
		t.Fatal("empty cache should not have entry")
	}
	if _, err := rc.Get(url); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Get on miss = %v, want ErrNotExist", err)
	}

	res := model.ConversionResult{Frames: []string{"a", "b"}, Duration: 80}
	if err := rc.Store(url, "Cat", res); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !rc.Has(url) {
		t.Fatal("expected entry after Store")
	}

	got, err := rc.Get(url)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Frames) != 2 || got.Duration != 80 {
		t.Errorf("Get() = %+v", got)
	}

	entries, err := rc.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SourceURL != url || e.Title != "Cat" || e.FrameCount != 2 || e.Key != Key(url) {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Size == 0 {
		t.Error("entry size should be computed")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	rc, err := NewResultCache(t.TempDir(), 10, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	url := "https://x/a.gif"
	if err := rc.Store(url, "", model.ConversionResult{Frames: []string{"a"}, Duration: 10}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if rc.Has(url) {
		t.Error("expired entry should be a miss")
	}
}

func TestEvictOverSize(t *testing.T) {
	dir := t.TempDir()
	rc, err := NewResultCache(dir, 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	big := strings.Repeat("#", 700*1024)
	old := "https://x/old.gif"
	if err := rc.Store(old, "old", model.ConversionResult{Frames: []string{big}, Duration: 10}); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Minute)
	os.Chtimes(rc.entryDir(Key(old)), past, past)

	newer := "https://x/new.gif"
	if err := rc.Store(newer, "new", model.ConversionResult{Frames: []string{big}, Duration: 10}); err != nil {
		t.Fatal(err)
	}

	if rc.Has(old) {
		t.Error("least recently used entry should be evicted")
	}
	if !rc.Has(newer) {
		t.Error("newest entry should survive eviction")
	}
}

func TestDeleteEntryAndAll(t *testing.T) {
	rc, err := NewResultCache(t.TempDir(), 10, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	res := model.ConversionResult{Frames: []string{"a"}, Duration: 10}
	rc.Store("https://x/1.gif", "", res)
	rc.Store("https://x/2.gif", "", res)

	if err := rc.DeleteEntry(Key("https://x/1.gif")); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if rc.Has("https://x/1.gif") {
		t.Error("deleted entry still present")
	}
	if err := rc.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	size, err := rc.TotalSize()
	if err != nil {
		t.Fatal(err)
	}
	if size != 0 {
		t.Errorf("TotalSize() = %d after DeleteAll", size)
	}
}

func TestKeyIgnoresSurroundingSpace(t *testing.T) {
	if Key(" https://x/a.gif ") != Key("https://x/a.gif") {
		t.Error("keys should match after trimming")
	}
	if Key("https://x/a.gif") == Key("https://x/b.gif") {
		t.Error("different URLs should not collide")
	}
}
