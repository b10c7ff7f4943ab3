package useragent

import (
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPool provides a realistic set of modern User-Agents across desktop
// and mobile browsers.
var DefaultPool = []string{
	// Chrome Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	// Firefox Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	// Chrome Mac
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	// Chrome Linux
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	// Edge Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/120.0.0.0",
	// Safari Mac
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	// Safari iPhone
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_2_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
	// Chrome Android
	"Mozilla/5.0 (Linux; Android 13; SM-S911B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
}

// DefaultReferers lists plausible search-engine referers for scraped requests.
var DefaultReferers = []string{
	"https://www.google.com/",
	"https://www.bing.com/",
	"https://www.yahoo.com/",
	"https://duckduckgo.com/",
	"https://www.startpage.com/",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
}

// Pool represents a collection of User-Agents and referers that can be
// retrieved sequentially or randomly. The random source is injectable so
// callers can pin selections in tests.
type Pool struct {
	uas      []string
	referers []string
	counter  atomic.Uint64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPool creates a new User-Agent pool. If uas is empty it falls back to
// DefaultPool; if rnd is nil a time-seeded source is used.
func NewPool(uas []string, rnd *rand.Rand) *Pool {
	if len(uas) == 0 {
		uas = DefaultPool
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	// Copy to avoid external mutation
	copied := make([]string, len(uas))
	copy(copied, uas)
	return &Pool{
		uas:      copied,
		referers: DefaultReferers,
		rnd:      rnd,
	}
}

// GetSequential returns the next User-Agent in the pool in a round-robin fashion.
// It is safe for concurrent use.
func (p *Pool) GetSequential() string {
	if len(p.uas) == 0 {
		return ""
	}
	idx := p.counter.Add(1) - 1
	return p.uas[idx%uint64(len(p.uas))]
}

// GetRandom returns a random User-Agent from the pool.
func (p *Pool) GetRandom() string {
	if len(p.uas) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uas[p.rnd.Intn(len(p.uas))]
}

// GetAll returns a copy of all User-Agents currently in the pool.
func (p *Pool) GetAll() []string {
	copied := make([]string, len(p.uas))
	copy(copied, p.uas)
	return copied
}

// BrowserHeaders returns a full browser-like header set with a randomized
// User-Agent, Referer and Accept-Language. Scraped engines get these headers
// on every live request; API engines only take the User-Agent.
func (p *Pool) BrowserHeaders() http.Header {
	p.mu.Lock()
	ua := p.uas[p.rnd.Intn(len(p.uas))]
	referer := p.referers[p.rnd.Intn(len(p.referers))]
	lang := acceptLanguages[p.rnd.Intn(len(acceptLanguages))]
	p.mu.Unlock()

	h := http.Header{}
	h.Set("User-Agent", ua)
	h.Set("Referer", referer)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", lang)
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	return h
}
