package engine

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

// Bing queries the Bing Web Search API. The subscription key is mandatory
// and travels in the Ocp-Apim-Subscription-Key header.
type Bing struct {
	apiKey   string
	endpoint string
	client   *httpclient.Client
	logger   *slog.Logger
}

// NewBing creates the bing API adapter. The endpoint is expected to be
// resolved (env > config file > default) by the caller.
func NewBing(client *httpclient.Client, apiKey, endpoint string, logger *slog.Logger) *Bing {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bing{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

func (b *Bing) Kind() Kind { return KindBing }

func (b *Bing) Search(ctx context.Context, query string, headers http.Header) []Result {
	if b.apiKey == "" {
		// Short-circuit before any network traffic.
		b.logger.Error("Bing API key is missing",
			"env", "BING_API_KEY", "config", "bing.api_key")
		return nil
	}

	params := url.Values{
		"q":      {query},
		"count":  {resultsPerPage},
		"offset": {"0"},
	}

	var payload struct {
		WebPages struct {
			Value []struct {
				Name        string `json:"name"`
				URL         string `json:"url"`
				Snippet     string `json:"snippet"`
				Description string `json:"description"`
			} `json:"value"`
		} `json:"webPages"`
	}

	h := apiHeaders(headers, "Ocp-Apim-Subscription-Key", b.apiKey)
	if !fetchJSON(ctx, b.client, b.logger, b.Kind(), b.endpoint, params, h, query, &payload) {
		return nil
	}

	var results []Result
	for _, item := range payload.WebPages.Value {
		snippet := item.Snippet
		if snippet == "" {
			snippet = item.Description
		}
		results = append(results, Result{
			Title:   item.Name,
			URL:     item.URL,
			Snippet: snippet,
			Domain:  hostOf(item.URL),
		})
	}
	return results
}
