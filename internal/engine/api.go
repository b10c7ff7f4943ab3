package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FranksOps/dorkhound/pkg/httpclient"
)

// fetchJSON issues a GET against a JSON API backend and decodes the body
// into out. It returns false on any failure, after logging it with the
// offending query.
func fetchJSON(ctx context.Context, client *httpclient.Client, logger *slog.Logger,
	kind Kind, endpoint string, params url.Values, headers http.Header, query string, out any) bool {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		logger.Warn("search request setup failed", "engine", kind, "query", query, "err", err)
		return false
	}
	applyHeaders(req, headers)

	resp, err := client.Do(ctx, req)
	if err != nil {
		logger.Warn("search failed", "engine", kind, "query", query, "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("search failed", "engine", kind, "query", query,
			"err", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn("search response decode failed", "engine", kind, "query", query, "err", err)
		return false
	}
	return true
}

// apiHeaders builds the minimal header set for an API call: the rotated
// User-Agent plus the backend's credential header, if any.
func apiHeaders(headers http.Header, credentialKey, credentialValue string) http.Header {
	h := http.Header{}
	if ua := headers.Get("User-Agent"); ua != "" {
		h.Set("User-Agent", ua)
	}
	if credentialKey != "" {
		h.Set(credentialKey, credentialValue)
	}
	return h
}
