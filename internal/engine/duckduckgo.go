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

// DefaultDuckDuckGoEndpoint is the non-JS HTML results page.
const DefaultDuckDuckGoEndpoint = "https://duckduckgo.com/html/"

// DuckDuckGo scrapes the html.duckduckgo.com results page: div.result
// containers with a.result__a links and .result__snippet snippets.
type DuckDuckGo struct {
	// Endpoint can be overridden for tests.
	Endpoint string

	client *httpclient.Client
	logger *slog.Logger
}

// NewDuckDuckGo creates the duckduckgo scrape adapter.
func NewDuckDuckGo(client *httpclient.Client, logger *slog.Logger) *DuckDuckGo {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuckDuckGo{
		Endpoint: DefaultDuckDuckGoEndpoint,
		client:   client,
		logger:   logger,
	}
}

func (d *DuckDuckGo) Kind() Kind { return KindDuckDuckGo }

func (d *DuckDuckGo) Search(ctx context.Context, query string, headers http.Header) []Result {
	params := url.Values{
		"q": {query},
	}

	doc := fetchDocument(ctx, d.client, d.logger, d.Kind(), d.Endpoint, params, headers, query)
	if doc == nil {
		return nil
	}

	var results []Result
	doc.Find("div.result").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("a.result__a").First()
		if link.Length() == 0 {
			return
		}
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return
		}

		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
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
