package httpclient

import (
	"io"
	"net/http"
	"time"
)

// RetryPolicy bounds transparent retries for transient upstream failures.
// Only GET requests are retried, and only on the listed status codes.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BackoffFactor scales the exponential backoff between attempts:
	// factor * 2^(attempt-1).
	BackoffFactor time.Duration
	// Statuses that trigger a retry. Empty means the default set
	// (429, 500, 502, 503, 504).
	Statuses []int
}

// DefaultRetryPolicy mirrors a conservative transport retry: three attempts
// with exponential backoff on rate-limit and server-error responses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BackoffFactor: time.Second,
		Statuses:      []int{429, 500, 502, 503, 504},
	}
}

type retryTransport struct {
	base    http.RoundTripper
	policy  RetryPolicy
	retryOn map[int]struct{}
}

// NewRetryTransport wraps base with the given retry policy. A nil base uses
// http.DefaultTransport.
func NewRetryTransport(base http.RoundTripper, policy RetryPolicy) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	statuses := policy.Statuses
	if len(statuses) == 0 {
		statuses = DefaultRetryPolicy().Statuses
	}
	retryOn := make(map[int]struct{}, len(statuses))
	for _, s := range statuses {
		retryOn[s] = struct{}{}
	}
	if policy.BackoffFactor <= 0 {
		policy.BackoffFactor = time.Second
	}
	return &retryTransport{
		base:    base,
		policy:  policy,
		retryOn: retryOn,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)

	// Never retry non-idempotent requests.
	if req.Method != http.MethodGet {
		return resp, err
	}

	for attempt := 1; attempt <= t.policy.MaxRetries; attempt++ {
		if err == nil {
			if _, retry := t.retryOn[resp.StatusCode]; !retry {
				return resp, nil
			}
			// Release the connection before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := t.policy.BackoffFactor * (1 << (attempt - 1))
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}

		resp, err = t.base.RoundTrip(req)
	}

	return resp, err
}
