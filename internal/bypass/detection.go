package bypass

import (
	"bytes"
	"net/http"
	"strings"
)

// Response captures the pieces of a fetched search page that block detection
// inspects.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Detector examines a fetched search page to determine if the engine served
// a challenge or block instead of organic results.
type Detector func(res *Response) (detected bool, source string)

// DefaultDetectors returns the standard list of block-page detectors for
// scraped search engines.
func DefaultDetectors() []Detector {
	return []Detector{
		detectGoogleSorry,
		detectCloudflare,
		detectCaptcha,
	}
}

// Analyze runs the response through all provided detectors and reports the
// first match.
func Analyze(res *Response, detectors []Detector) (bool, string) {
	if res == nil {
		return false, ""
	}
	for _, d := range detectors {
		if detected, source := d(res); detected {
			return true, source
		}
	}
	return false, ""
}

// detectGoogleSorry looks for Google's "unusual traffic" interstitial, which
// is served either as a 429 or as a redirect target under /sorry/.
func detectGoogleSorry(res *Response) (bool, string) {
	if res.StatusCode == http.StatusTooManyRequests {
		return true, "Google"
	}
	if bytes.Contains(res.Body, []byte("Our systems have detected unusual traffic")) ||
		bytes.Contains(res.Body, []byte("/sorry/index")) {
		return true, "Google"
	}
	return false, ""
}

// detectCloudflare looks for common Cloudflare challenge/block signatures,
// relevant for self-hosted SearXNG instances and DuckDuckGo edges.
func detectCloudflare(res *Response) (bool, string) {
	if res.StatusCode == http.StatusForbidden || res.StatusCode == http.StatusServiceUnavailable {
		server := strings.ToLower(res.Headers.Get("Server"))
		if strings.Contains(server, "cloudflare") {
			return true, "Cloudflare"
		}

		if bytes.Contains(res.Body, []byte("cf-browser-verification")) ||
			bytes.Contains(res.Body, []byte("cf-turnstile")) ||
			bytes.Contains(res.Body, []byte("Attention Required! | Cloudflare")) {
			return true, "Cloudflare"
		}
	}
	return false, ""
}

// detectCaptcha looks for generic CAPTCHA markers on otherwise successful
// pages.
func detectCaptcha(res *Response) (bool, string) {
	if bytes.Contains(res.Body, []byte("g-recaptcha")) ||
		bytes.Contains(res.Body, []byte("h-captcha")) ||
		bytes.Contains(res.Body, []byte("anomaly-modal")) {
		return true, "CAPTCHA"
	}
	return false, ""
}
