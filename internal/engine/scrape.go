package engine

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FranksOps/dorkhound/internal/bypass"
	"github.com/FranksOps/dorkhound/pkg/httpclient"
	"github.com/PuerkitoBio/goquery"
)

// fetchDocument issues a GET against a scraped engine's results page and
// parses the body. It returns nil when the request fails, the engine serves
// a block or challenge page, or the response is not a 200; every case is
// logged with the offending query so the caller can simply skip.
func fetchDocument(ctx context.Context, client *httpclient.Client, logger *slog.Logger,
	kind Kind, endpoint string, params url.Values, headers http.Header, query string) *goquery.Document {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		logger.Warn("search request setup failed", "engine", kind, "query", query, "err", err)
		return nil
	}
	applyHeaders(req, headers)

	resp, err := client.Do(ctx, req)
	if err != nil {
		logger.Warn("search failed", "engine", kind, "query", query, "err", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("search response read failed", "engine", kind, "query", query, "err", err)
		return nil
	}

	if detected, source := bypass.Analyze(&bypass.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, bypass.DefaultDetectors()); detected {
		logger.Warn("block page detected", "engine", kind, "query", query, "source", source)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("search returned non-200", "engine", kind, "query", query, "status", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Warn("search response parse failed", "engine", kind, "query", query, "err", err)
		return nil
	}
	return doc
}
