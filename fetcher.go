package tagscrape

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the fetch timeout used when a request does not set one.
const DefaultTimeout = 10 * time.Second

// FetchRequest describes a single HTTP retrieval.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// Key returns the memoization key identifying this request.
func (r FetchRequest) Key() FetchKey {
	return FetchKey{URL: r.URL, Headers: r.Headers, Timeout: r.Timeout}
}

// Fetcher retrieves the body of a URL as text.
type Fetcher interface {
	// Fetch performs a single GET of req.URL and returns the response body.
	// A transport failure or a non-2xx status returns a *FetchError and
	// never a partial body.
	Fetch(ctx context.Context, req FetchRequest) (body string, err error)
}

// FetchKey identifies a fetch for memoization. Two keys are equal when the
// URL, timeout, and header set are equal; header order does not matter.
type FetchKey struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// String returns the canonical form of the key.
// Header names are sorted so the result is independent of map iteration order.
func (k FetchKey) String() string {
	names := make([]string, 0, len(k.Headers))
	for name := range k.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strconv.Quote(k.URL))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(int64(k.Timeout), 10))
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(name))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(k.Headers[name]))
	}
	return b.String()
}

// FetchError reports a transport-level or HTTP-status-level failure.
type FetchError struct {
	URL string

	// StatusCode is the HTTP status for status failures, zero otherwise.
	StatusCode int

	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
