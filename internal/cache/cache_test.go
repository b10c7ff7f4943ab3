package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/FranksOps/dorkhound/internal/engine"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "cache"), nil)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return c
}

func sampleResults() []engine.Result {
	return []engine.Result{
		{
			Title:   "Index of /backup",
			URL:     "http://victim.example.com/backup/",
			Snippet: "Parent Directory",
			Domain:  "victim.example.com",
		},
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	want := sampleResults()

	c.Store("intitle:index.of", want)

	got, ok := c.Lookup("intitle:index.of")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestCache_MissOnUnknownQuery(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Lookup("never stored"); ok {
		t.Fatal("expected miss for unknown query")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := newTestCache(t)
	c.Store("old query", sampleResults())

	// Move the clock past the TTL; the file stays on disk.
	c.now = func() time.Time { return time.Now().Add(TTL + time.Minute) }

	if _, ok := c.Lookup("old query"); ok {
		t.Fatal("expected miss for expired entry")
	}
	if _, err := os.Stat(c.path("old query")); err != nil {
		t.Errorf("stale file should not be purged: %v", err)
	}
}

func TestCache_FreshWithinTTL(t *testing.T) {
	c := newTestCache(t)
	c.Store("recent", sampleResults())

	c.now = func() time.Time { return time.Now().Add(TTL - time.Minute) }

	if _, ok := c.Lookup("recent"); !ok {
		t.Fatal("expected hit just inside TTL")
	}
}

func TestCache_CorruptFileIsMiss(t *testing.T) {
	c := newTestCache(t)
	c.Store("query", sampleResults())

	if err := os.WriteFile(c.path("query"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to corrupt cache file: %v", err)
	}

	if _, ok := c.Lookup("query"); ok {
		t.Fatal("expected miss for corrupt entry")
	}
}

func TestCache_StoreOverwrites(t *testing.T) {
	c := newTestCache(t)
	c.Store("query", sampleResults())
	c.Store("query", nil)

	got, ok := c.Lookup("query")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 0 {
		t.Errorf("expected overwritten empty results, got %+v", got)
	}
}

func TestCache_EmptyResultsCached(t *testing.T) {
	// An empty fetch is still a valid entry: it prevents refetching.
	c := newTestCache(t)
	c.Store("no hits", []engine.Result{})

	if _, ok := c.Lookup("no hits"); !ok {
		t.Fatal("expected hit for cached empty result list")
	}
}

func TestCache_NoNormalization(t *testing.T) {
	c := newTestCache(t)
	c.Store("query", sampleResults())

	if _, ok := c.Lookup("query "); ok {
		t.Fatal("whitespace variant should not share a cache entry")
	}
	if _, ok := c.Lookup("Query"); ok {
		t.Fatal("case variant should not share a cache entry")
	}
}

func TestCache_DirCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	if _, err := New(dir, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected cache dir to exist: %v", err)
	}
}
