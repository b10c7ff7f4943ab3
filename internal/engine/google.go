package engine

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
	"github.com/PuerkitoBio/goquery"
)

// DefaultGoogleEndpoint is the search page scraped by the google engine.
const DefaultGoogleEndpoint = "https://www.google.com/search"

// Google scrapes Google's HTML results page. Result blocks live in div.g
// containers; the title sits in an h3, the target in the first anchor, and
// the snippet in span.st.
type Google struct {
	// Endpoint can be overridden for tests.
	Endpoint string

	client *httpclient.Client
	logger *slog.Logger
}

// NewGoogle creates the google scrape adapter.
func NewGoogle(client *httpclient.Client, logger *slog.Logger) *Google {
	if logger == nil {
		logger = slog.Default()
	}
	return &Google{
		Endpoint: DefaultGoogleEndpoint,
		client:   client,
		logger:   logger,
	}
}

func (g *Google) Kind() Kind { return KindGoogle }

func (g *Google) Search(ctx context.Context, query string, headers http.Header) []Result {
	params := url.Values{
		"q":     {query},
		"num":   {resultsPerPage},
		"start": {"0"},
	}

	doc := fetchDocument(ctx, g.client, g.logger, g.Kind(), g.Endpoint, params, headers, query)
	if doc == nil {
		return nil
	}

	var results []Result
	doc.Find("div.g").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		href, ok := sel.Find("a").First().Attr("href")
		if title == "" || !ok {
			return
		}

		// Google's own links are internal redirects, not organic results.
		if !strings.HasPrefix(href, "http") || strings.Contains(href, "google.com") {
			return
		}

		snippet := strings.TrimSpace(sel.Find("span.st").First().Text())
		if snippet == "" {
			snippet = "N/A"
		}

		results = append(results, Result{
			Title:   title,
			URL:     href,
			Snippet: snippet,
			Domain:  hostOf(href),
		})
	})

	return results
}
