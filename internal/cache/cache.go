package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/FranksOps/dorkhound/internal/engine"
)

// TTL is the freshness window for cached entries. Entries older than this
// are treated as absent; the stale file is left in place and overwritten on
// the next successful fetch.
const TTL = 24 * time.Hour

// DefaultDir is the cache directory used when none is configured.
const DefaultDir = ".cache"

// Cache maps a query string to a previously fetched result list, one JSON
// file per query under a cache directory.
//
// The key is md5 of the raw query string with no normalization: two queries
// differing only in case or whitespace do not share an entry. This matches
// the on-disk layout of existing caches; changing it would orphan them.
type Cache struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// entry is the on-disk representation of one cached query.
type entry struct {
	Query     string          `json:"query"`
	Results   []engine.Result `json:"results"`
	Timestamp int64           `json:"timestamp"`
}

// New creates a cache rooted at dir, creating the directory if absent.
func New(dir string, logger *slog.Logger) (*Cache, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// path returns the cache file location for a query.
func (c *Cache) path(query string) string {
	sum := md5.Sum([]byte(query))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

// Lookup returns the cached results for a query if a fresh entry exists.
// Read and parse errors are treated as misses; lookup never fails.
func (c *Cache) Lookup(query string) ([]engine.Result, bool) {
	data, err := os.ReadFile(c.path(query))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if c.now().Unix()-e.Timestamp >= int64(TTL.Seconds()) {
		return nil, false
	}
	return e.Results, true
}

// Store writes the results for a query, overwriting any previous entry.
// Write errors are logged, never propagated: a cache failure must not abort
// the search that produced the results.
func (c *Cache) Store(query string, results []engine.Result) {
	e := entry{
		Query:     query,
		Results:   results,
		Timestamp: c.now().Unix(),
	}

	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("cache encode failed", "query", query, "err", err)
		return
	}

	if err := os.WriteFile(c.path(query), data, 0644); err != nil {
		c.logger.Warn("cache write failed", "query", query, "err", err)
	}
}
