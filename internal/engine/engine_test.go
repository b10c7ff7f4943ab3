package engine

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T) *httpclient.Client {
	t.Helper()
	client, err := httpclient.New(httpclient.Config{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// countingTransport fails every request but records how many were attempted.
type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, http.ErrHandlerTimeout
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"google", KindGoogle, false},
		{"GOOGLE", KindGoogle, false},
		{" bing ", KindBing, false},
		{"brave", KindBrave, false},
		{"duckduckgo", KindDuckDuckGo, false},
		{"searxng", KindSearXNG, false},
		{"altavista", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestHostOf(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://sub.example.org/path", "sub.example.org"},
		{"https://example.com", "example.com"},
		{"http://example.com:8080/x", "example.com:8080"},
		{"http://exa mple.org/path", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := hostOf(tc.in); got != tc.want {
			t.Errorf("hostOf(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
