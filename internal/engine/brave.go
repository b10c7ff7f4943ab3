package engine

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

// Brave queries the Brave Search API. The subscription token is mandatory
// and travels in the X-Subscription-Token header.
type Brave struct {
	apiKey   string
	endpoint string
	client   *httpclient.Client
	logger   *slog.Logger
}

// NewBrave creates the brave API adapter. The endpoint is expected to be
// resolved (env > config file > default) by the caller.
func NewBrave(client *httpclient.Client, apiKey, endpoint string, logger *slog.Logger) *Brave {
	if logger == nil {
		logger = slog.Default()
	}
	return &Brave{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

func (b *Brave) Kind() Kind { return KindBrave }

func (b *Brave) Search(ctx context.Context, query string, headers http.Header) []Result {
	if b.apiKey == "" {
		// Short-circuit before any network traffic.
		b.logger.Error("Brave API key is missing",
			"env", "BRAVE_API_KEY", "config", "brave.api_key")
		return nil
	}

	params := url.Values{
		"q":      {query},
		"count":  {resultsPerPage},
		"offset": {"0"},
	}

	var payload struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Snippet     string `json:"snippet"`
			} `json:"results"`
		} `json:"web"`
	}

	h := apiHeaders(headers, "X-Subscription-Token", b.apiKey)
	if !fetchJSON(ctx, b.client, b.logger, b.Kind(), b.endpoint, params, h, query, &payload) {
		return nil
	}

	var results []Result
	for _, item := range payload.Web.Results {
		snippet := item.Description
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
