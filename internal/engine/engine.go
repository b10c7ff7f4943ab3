package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Result is one normalized search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
}

// Kind identifies a supported search backend.
type Kind string

const (
	KindGoogle     Kind = "google"
	KindBing       Kind = "bing"
	KindBrave      Kind = "brave"
	KindDuckDuckGo Kind = "duckduckgo"
	KindSearXNG    Kind = "searxng"
)

// Kinds returns all supported engine kinds in display order.
func Kinds() []Kind {
	return []Kind{KindGoogle, KindBing, KindBrave, KindDuckDuckGo, KindSearXNG}
}

// ParseKind validates a user-supplied engine name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q (supported: %s)", s, joinKinds())
}

func joinKinds() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Engine turns a single query into a list of normalized results.
//
// Implementations never return an error for per-query failures: network
// errors, non-2xx responses, and malformed payloads are logged together with
// the offending query and degrade to an empty slice, so one bad query
// cannot abort a batch. The headers carry the rotated browser identity for
// this request; proxy selection and timeouts ride on the shared client.
type Engine interface {
	Kind() Kind
	Search(ctx context.Context, query string, headers http.Header) []Result
}

// resultsPerPage is the fixed page size requested from every backend.
const resultsPerPage = "10"

// hostOf extracts the host component of a result URL. An unparsable URL
// yields an empty string rather than an error.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// applyHeaders copies the rotated header set onto a request.
func applyHeaders(req *http.Request, headers http.Header) {
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
}
