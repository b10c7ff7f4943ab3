package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

func TestSearXNG_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search path, got %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("expected format=json, got %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "key" {
			t.Errorf("expected api_key=key, got %q", got)
		}
		fmt.Fprint(w, `{
			"results": [
				{"title": "First", "url": "http://a.example.com/x", "content": "content text"},
				{"title": "Second", "url": "http://b.example.com/y", "content": "", "snippet": "snippet fallback"}
			]
		}`)
	}))
	defer ts.Close()

	// Trailing slash on the endpoint must not double up.
	s := NewSearXNG(testClient(t), "key", ts.URL+"/", testLogger())

	results := s.Search(context.Background(), "q", http.Header{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Snippet != "content text" {
		t.Errorf("expected content preferred, got %q", results[0].Snippet)
	}
	if results[1].Snippet != "snippet fallback" {
		t.Errorf("expected snippet fallback, got %q", results[1].Snippet)
	}
}

func TestSearXNG_NoKeyOmitsParam(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["api_key"]; present {
			t.Error("api_key param should be absent when no key configured")
		}
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer ts.Close()

	s := NewSearXNG(testClient(t), "", ts.URL, testLogger())
	if results := s.Search(context.Background(), "q", http.Header{}); len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}

func TestSearXNG_MissingEndpointShortCircuits(t *testing.T) {
	transport := &countingTransport{}
	client, err := httpclient.New(httpclient.Config{Transport: transport})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	s := NewSearXNG(client, "", "", testLogger())

	if results := s.Search(context.Background(), "q", http.Header{}); len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
	if got := transport.calls.Load(); got != 0 {
		t.Fatalf("expected zero network calls, got %d", got)
	}
}
