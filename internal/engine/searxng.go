package engine

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

// SearXNG queries a SearXNG instance's JSON endpoint. Only the endpoint is
// required; the API key, when present, is passed as a query parameter.
type SearXNG struct {
	apiKey   string
	endpoint string
	client   *httpclient.Client
	logger   *slog.Logger
}

// NewSearXNG creates the searxng adapter. The endpoint is expected to be
// resolved (env > config file > default) by the caller.
func NewSearXNG(client *httpclient.Client, apiKey, endpoint string, logger *slog.Logger) *SearXNG {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearXNG{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

func (s *SearXNG) Kind() Kind { return KindSearXNG }

func (s *SearXNG) Search(ctx context.Context, query string, headers http.Header) []Result {
	if s.endpoint == "" {
		// Short-circuit before any network traffic.
		s.logger.Error("SearXNG endpoint is missing",
			"env", "SEARXNG_ENDPOINT", "config", "searxng.endpoint")
		return nil
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}

	var payload struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
			Snippet string `json:"snippet"`
		} `json:"results"`
	}

	endpoint := strings.TrimRight(s.endpoint, "/") + "/search"
	h := apiHeaders(headers, "", "")
	if !fetchJSON(ctx, s.client, s.logger, s.Kind(), endpoint, params, h, query, &payload) {
		return nil
	}

	var results []Result
	for _, item := range payload.Results {
		snippet := item.Content
		if snippet == "" {
			snippet = item.Snippet
		}
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: snippet,
			Domain:  hostOf(item.URL),
		})
	}
	return results
}
