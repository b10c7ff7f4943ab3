package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dorkhound_queries_total",
			Help: "Total number of queries processed, by engine and source",
		},
		[]string{"engine", "source"},
	)

	ResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dorkhound_results_total",
			Help: "Total number of search results returned",
		},
		[]string{"engine"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dorkhound_search_duration_seconds",
			Help:    "Duration of live search requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"engine"},
	)

	ProxyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dorkhound_proxy_failures_total",
			Help: "Total number of proxy failures during searches",
		},
		[]string{"proxy_url"},
	)
)

const (
	SourceLive  = "live"
	SourceCache = "cache"
)

// RecordSearch updates query metrics for one processed query.
func RecordSearch(engine, source string, resultCount int, duration time.Duration) {
	QueriesTotal.WithLabelValues(engine, source).Inc()
	ResultsTotal.WithLabelValues(engine).Add(float64(resultCount))
	if source == SourceLive {
		SearchDuration.WithLabelValues(engine).Observe(duration.Seconds())
	}
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on the specified port and exposes /metrics.
func Start(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		// Suppress the error from intentional shutdown
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server failed: %v\n", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
