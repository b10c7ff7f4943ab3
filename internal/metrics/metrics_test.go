package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestMetricsServer(t *testing.T) {
	srv := Start(18889)
	// Give it a tiny bit of time to start up
	time.Sleep(100 * time.Millisecond)

	defer srv.Stop(context.Background())

	RecordSearch("google", SourceLive, 7, 2*time.Second)
	RecordSearch("google", SourceCache, 7, 0)
	ProxyFailures.WithLabelValues("http://127.0.0.1:8080").Inc()

	resp, err := http.Get("http://localhost:18889/metrics")
	if err != nil {
		t.Fatalf("failed to fetch metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	output := string(body)

	if !strings.Contains(output, `dorkhound_queries_total{engine="google",source="live"}`) {
		t.Errorf("expected live query counter")
	}
	if !strings.Contains(output, `dorkhound_queries_total{engine="google",source="cache"}`) {
		t.Errorf("expected cache query counter")
	}
	if !strings.Contains(output, `dorkhound_search_duration_seconds_bucket`) {
		t.Errorf("expected search duration histogram")
	}
	if !strings.Contains(output, `dorkhound_proxy_failures_total{proxy_url="http://127.0.0.1:8080"}`) {
		t.Errorf("expected proxy failure counter")
	}
}
