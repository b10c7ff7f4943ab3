package dork

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/FranksOps/dorkhound/internal/cache"
	"github.com/FranksOps/dorkhound/internal/config"
	"github.com/FranksOps/dorkhound/internal/engine"
	"github.com/FranksOps/dorkhound/internal/fingerprint"
	"github.com/FranksOps/dorkhound/internal/metrics"
	"github.com/FranksOps/dorkhound/internal/storage"
	"github.com/FranksOps/dorkhound/pkg/httpclient"
	"github.com/FranksOps/dorkhound/pkg/proxy"
	"github.com/FranksOps/dorkhound/pkg/ratelimit"
	"github.com/FranksOps/dorkhound/pkg/useragent"
	"github.com/google/uuid"
)

type contextKey string

const proxyKey contextKey = "proxy_url"

// Config defines the setup for the search client.
type Config struct {
	// Engine selects the backend adapter. Defaults to google.
	Engine engine.Kind
	// Delay is the fixed floor slept before every live fetch; a uniform
	// draw from [0, 1) seconds is added on top.
	Delay time.Duration
	// Timeout is the per-request socket timeout applied to every backend.
	Timeout time.Duration
	// UseCache enables the per-query disk cache under CacheDir.
	UseCache bool
	CacheDir string
	// Proxies supplies the rotation pool; nil or empty means direct requests.
	Proxies *proxy.Pool
	// Fingerprint overrides the TLS profile. Defaults to chrome for scraped
	// engines and plain Go TLS for API engines.
	Fingerprint fingerprint.Profile
	// History, when set, records every live query execution.
	History storage.Backend
	// Rand seeds header rotation and delay jitter; nil uses a time seed.
	Rand   *rand.Rand
	Logger *slog.Logger

	// Resolved API backend credentials.
	Bing    config.Backend
	Brave   config.Backend
	SearXNG config.Backend
}

// Client orchestrates the per-query flow: cache lookup, mandatory delay,
// proxy selection, header rotation, backend dispatch and cache population.
// It owns one proxy rotation cursor and one optional cache for its lifetime.
type Client struct {
	cfg     Config
	eng     engine.Engine
	uaPool  *useragent.Pool
	delayer *ratelimit.Delayer
	cache   *cache.Cache
	logger  *slog.Logger
}

// New creates a search client. The backend adapter is resolved once here,
// not re-dispatched per call.
func New(cfg Config) (*Client, error) {
	if cfg.Engine == "" {
		cfg.Engine = engine.KindGoogle
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	scraped := cfg.Engine == engine.KindGoogle || cfg.Engine == engine.KindDuckDuckGo

	profile := cfg.Fingerprint
	if profile == "" {
		if scraped {
			profile = fingerprint.ProfileChrome
		} else {
			profile = fingerprint.ProfileGo
		}
	}

	// The transport's proxy function reads the rotated proxy from the
	// request context, so one shared transport serves every request while
	// still rotating per query.
	proxyFunc := func(req *http.Request) (*url.URL, error) {
		if val := req.Context().Value(proxyKey); val != nil {
			if u, ok := val.(*url.URL); ok {
				return u, nil
			}
		}
		return http.ProxyFromEnvironment(req)
	}

	transport, err := fingerprint.Transport(profile, proxyFunc)
	if err != nil {
		return nil, fmt.Errorf("setup transport: %w", err)
	}

	retry := httpclient.DefaultRetryPolicy()
	httpClient, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: 10,
		UseCookieJar: scraped,
		Transport:    transport,
		RetryPolicy:  &retry,
	})
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var eng engine.Engine
	switch cfg.Engine {
	case engine.KindGoogle:
		eng = engine.NewGoogle(httpClient, cfg.Logger)
	case engine.KindDuckDuckGo:
		eng = engine.NewDuckDuckGo(httpClient, cfg.Logger)
	case engine.KindBing:
		eng = engine.NewBing(httpClient, cfg.Bing.APIKey, cfg.Bing.Endpoint, cfg.Logger)
	case engine.KindBrave:
		eng = engine.NewBrave(httpClient, cfg.Brave.APIKey, cfg.Brave.Endpoint, cfg.Logger)
	case engine.KindSearXNG:
		eng = engine.NewSearXNG(httpClient, cfg.SearXNG.APIKey, cfg.SearXNG.Endpoint, cfg.Logger)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	var resultCache *cache.Cache
	if cfg.UseCache {
		resultCache, err = cache.New(cfg.CacheDir, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("create cache: %w", err)
		}
	}

	return &Client{
		cfg:     cfg,
		eng:     eng,
		uaPool:  useragent.NewPool(nil, cfg.Rand),
		delayer: ratelimit.NewDelayer(cfg.Delay, cfg.Rand),
		cache:   resultCache,
		logger:  cfg.Logger,
	}, nil
}

// Engine returns the adapter the client dispatches to.
func (c *Client) Engine() engine.Engine {
	return c.eng
}

// Search runs a single query. A fresh cache entry short-circuits the whole
// flow; otherwise the mandatory delay applies, the next proxy is taken from
// the rotation, and the adapter is invoked with a rotated browser identity.
// The fetched result list, empty or not, is persisted before returning.
func (c *Client) Search(ctx context.Context, query string) []engine.Result {
	kind := string(c.eng.Kind())

	if c.cache != nil {
		if results, ok := c.cache.Lookup(query); ok {
			metrics.RecordSearch(kind, metrics.SourceCache, len(results), 0)
			return results
		}
	}

	if err := c.delayer.Wait(ctx); err != nil {
		c.logger.Warn("delay interrupted", "query", query, "err", err)
		return nil
	}

	var activeProxy *url.URL
	if c.cfg.Proxies != nil {
		if activeProxy = c.cfg.Proxies.Next(); activeProxy != nil {
			ctx = context.WithValue(ctx, proxyKey, activeProxy)
		}
	}

	start := time.Now()
	results := c.eng.Search(ctx, query, c.uaPool.BrowserHeaders())
	duration := time.Since(start)

	if activeProxy != nil {
		// An empty live result usually means a failed or blocked fetch.
		if len(results) == 0 {
			_ = c.cfg.Proxies.MarkFailure(activeProxy)
			metrics.ProxyFailures.WithLabelValues(activeProxy.String()).Inc()
		} else {
			_ = c.cfg.Proxies.MarkSuccess(activeProxy)
		}
	}

	if c.cache != nil {
		c.cache.Store(query, results)
	}

	metrics.RecordSearch(kind, metrics.SourceLive, len(results), duration)
	c.recordHistory(ctx, query, kind, len(results), duration)

	return results
}

// recordHistory persists one live execution. History failures are logged,
// never allowed to abort the batch.
func (c *Client) recordHistory(ctx context.Context, query, kind string, resultCount int, duration time.Duration) {
	if c.cfg.History == nil {
		return
	}

	rec := &storage.Record{
		ID:          uuid.New().String(),
		Query:       query,
		Engine:      kind,
		ResultCount: resultCount,
		Duration:    duration,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.cfg.History.Save(ctx, rec); err != nil {
		c.logger.Warn("history write failed", "query", query, "err", err)
	}
}

// SearchMany runs every query in order and aggregates the results into one
// mapping entry per distinct query; a duplicate query overwrites its earlier
// results. No per-query failure aborts the batch.
func (c *Client) SearchMany(ctx context.Context, queries []string) *ResultSet {
	rs := NewResultSet()
	for i, query := range queries {
		c.logger.Info("searching", "query", query, "progress", fmt.Sprintf("%d/%d", i+1, len(queries)))
		rs.Add(query, c.Search(ctx, query))
	}
	return rs
}
