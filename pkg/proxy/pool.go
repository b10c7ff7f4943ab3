package proxy

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Proxy represents a single proxy endpoint with usage tracking.
type Proxy struct {
	URL       *url.URL
	Failures  int
	Successes int
	LastUsed  time.Time
}

// Pool hands out proxies in strict round-robin order. Every endpoint is
// returned exactly once per cycle regardless of its failure history; the
// counters exist for reporting, not for selection.
type Pool struct {
	mu           sync.Mutex
	proxies      []*Proxy
	currentIndex int
}

// NewPool creates an empty proxy pool.
func NewPool() *Pool {
	return &Pool{}
}

// LoadFile reads proxies from a file, expecting one URL or host:port per line.
// Empty lines and lines starting with '#' are ignored. Any previously loaded
// list is replaced. Line content is never a load error: every non-comment
// line becomes a pool entry. Returns the number of proxies loaded.
func (p *Pool) LoadFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open proxy file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var urls []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read proxy file: %w", err)
	}

	p.mu.Lock()
	p.proxies = nil
	p.currentIndex = 0
	p.mu.Unlock()

	p.Add(urls...)
	return p.Len(), nil
}

// Add appends entries to the pool. Entries without a recognized scheme
// (http, https, socks5) are prefixed with "http://"; beyond that the line
// is taken as-is. An entry that is not a parseable URL (e.g. the common
// host:port:user:pass proxy-list format) is kept verbatim as the host part,
// so it still occupies its rotation slot.
func (p *Pool) Add(rawURLs ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, raw := range rawURLs {
		if !hasKnownScheme(raw) {
			raw = "http://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil {
			scheme, rest, _ := strings.Cut(raw, "://")
			u = &url.URL{Scheme: scheme, Host: rest}
		}
		p.proxies = append(p.proxies, &Proxy{
			URL: u,
		})
	}
}

func hasKnownScheme(raw string) bool {
	return strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "socks5://")
}

// Next returns the next proxy URL in the pool, advancing the cursor modulo
// the list length. It returns nil if the pool is empty. Proxies are never
// skipped, so N calls visit all N endpoints in insertion order and the
// (N+1)-th call wraps back to the first.
func (p *Pool) Next() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return nil
	}

	prx := p.proxies[p.currentIndex]
	p.currentIndex = (p.currentIndex + 1) % len(p.proxies)

	prx.LastUsed = time.Now()
	return prx.URL
}

// Len returns the number of proxies currently in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.proxies)
}

// MarkSuccess records a successful request through the given proxy.
func (p *Pool) MarkSuccess(proxyURL *url.URL) error {
	if proxyURL == nil {
		return errors.New("proxy: proxyURL cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prx := p.findProxy(proxyURL)
	if prx == nil {
		return errors.New("proxy: proxy not found in pool")
	}

	prx.Successes++
	return nil
}

// MarkFailure records a failed request through the given proxy. The proxy
// stays in rotation; the count is surfaced through metrics only.
func (p *Pool) MarkFailure(proxyURL *url.URL) error {
	if proxyURL == nil {
		return errors.New("proxy: proxyURL cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prx := p.findProxy(proxyURL)
	if prx == nil {
		return errors.New("proxy: proxy not found in pool")
	}

	prx.Failures++
	return nil
}

// Snapshot returns a copy of every proxy with its current counters, in
// insertion order.
func (p *Pool) Snapshot() []Proxy {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Proxy, len(p.proxies))
	for i, prx := range p.proxies {
		out[i] = *prx
	}
	return out
}

// findProxy locates a proxy by its String() representation. Must be called with lock held.
func (p *Pool) findProxy(u *url.URL) *Proxy {
	target := u.String()
	for _, prx := range p.proxies {
		if prx.URL.String() == target {
			return prx
		}
	}
	return nil
}
