package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

const (
	resultFile  = "result.json"
	metaFile    = "meta.json"
	entryPrefix = "gif-"
)

// ResultCache stores conversion results on disk keyed by source URL.
type ResultCache struct {
	dir     string
	maxSize int64         // max total cache size in bytes
	ttl     time.Duration // cache entry TTL
}

// EntryMeta stores metadata about a cached conversion.
type EntryMeta struct {
	SourceURL  string    `json:"source_url"`
	Title      string    `json:"title"`
	FrameCount int       `json:"frame_count"`
	Duration   int       `json:"duration"`
	StoredAt   time.Time `json:"stored_at"`
}

// Entry represents a single cached conversion with computed fields.
type Entry struct {
	EntryMeta
	Key          string
	LastAccessed time.Time
	Size         int64
	Path         string
}

func NewResultCache(dir string, maxSizeMB int, ttl time.Duration) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create result cache dir: %w", err)
	}
	return &ResultCache{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
	}, nil
}

// Key derives the entry key for a source URL.
func Key(sourceURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(sourceURL)))
	return hex.EncodeToString(sum[:8])
}

func (rc *ResultCache) entryDir(key string) string {
	return filepath.Join(rc.dir, entryPrefix+key)
}

func (rc *ResultCache) Has(sourceURL string) bool {
	info, err := os.Stat(filepath.Join(rc.entryDir(Key(sourceURL)), resultFile))
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < rc.ttl
}

// Get returns the cached result for sourceURL and marks it as accessed.
func (rc *ResultCache) Get(sourceURL string) (*model.ConversionResult, error) {
	if !rc.Has(sourceURL) {
		return nil, os.ErrNotExist
	}
	dir := rc.entryDir(Key(sourceURL))
	data, err := os.ReadFile(filepath.Join(dir, resultFile))
	if err != nil {
		return nil, err
	}
	var res model.ConversionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	now := time.Now()
	os.Chtimes(dir, now, now)
	return &res, nil
}

// Store writes res and its metadata, then evicts to stay within limits.
func (rc *ResultCache) Store(sourceURL, title string, res model.ConversionResult) error {
	dir := rc.entryDir(Key(sourceURL))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, resultFile), data, 0o644); err != nil {
		return fmt.Errorf("write cached result: %w", err)
	}
	meta := EntryMeta{
		SourceURL:  sourceURL,
		Title:      title,
		FrameCount: len(res.Frames),
		Duration:   res.Duration,
		StoredAt:   time.Now(),
	}
	if err := rc.writeMeta(dir, meta); err != nil {
		return err
	}
	return rc.Evict()
}

func (rc *ResultCache) writeMeta(dir string, meta EntryMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, metaFile), data, 0o644)
}

func (rc *ResultCache) readMeta(dir string) (*EntryMeta, error) {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return nil, err
	}
	var meta EntryMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Evict removes expired entries, then the least recently used ones until the
// cache fits within its size cap.
func (rc *ResultCache) Evict() error {
	entries, err := rc.ListEntries()
	if err != nil {
		return err
	}

	var totalSize int64
	remaining := entries[:0]
	for _, e := range entries {
		if time.Since(e.StoredAt) > rc.ttl {
			os.RemoveAll(e.Path)
			continue
		}
		totalSize += e.Size
		remaining = append(remaining, e)
	}

	if totalSize <= rc.maxSize {
		return nil
	}
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].LastAccessed.Before(remaining[j].LastAccessed)
	})
	for _, e := range remaining {
		if totalSize <= rc.maxSize {
			break
		}
		os.RemoveAll(e.Path)
		totalSize -= e.Size
	}
	return nil
}

// ListEntries scans the cache directory and returns all entries.
func (rc *ResultCache) ListEntries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(rc.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var result []Entry
	for _, de := range dirEntries {
		if !de.IsDir() || !strings.HasPrefix(de.Name(), entryPrefix) {
			continue
		}
		dirPath := filepath.Join(rc.dir, de.Name())
		entry := Entry{
			Key:  strings.TrimPrefix(de.Name(), entryPrefix),
			Path: dirPath,
		}
		if meta, err := rc.readMeta(dirPath); err == nil {
			entry.EntryMeta = *meta
		}
		if info, err := os.Stat(dirPath); err == nil {
			entry.LastAccessed = info.ModTime()
			if entry.StoredAt.IsZero() {
				entry.StoredAt = info.ModTime()
			}
		}
		entry.Size = dirSize(dirPath)
		result = append(result, entry)
	}
	return result, nil
}

// DeleteEntry removes a single cache entry by key.
func (rc *ResultCache) DeleteEntry(key string) error {
	return os.RemoveAll(rc.entryDir(key))
}

// DeleteAll removes all cache entries.
func (rc *ResultCache) DeleteAll() error {
	entries, err := rc.ListEntries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(e.Path); err != nil {
			return err
		}
	}
	return nil
}

// TotalSize returns total cache size in bytes.
func (rc *ResultCache) TotalSize() (int64, error) {
	entries, err := rc.ListEntries()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total, nil
}

func dirSize(path string) int64 {
	var size int64
	filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
