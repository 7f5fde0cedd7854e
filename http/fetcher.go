// Package http provides an HTTP-based implementation of tagscrape.Fetcher.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/tagscrape"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent unless the request carries its own User-Agent.
const DefaultUserAgent = "tagscrape/1.0 (+https://github.com/fwojciec/tagscrape)"

// DefaultMaxBodySize caps the number of bytes read from a response.
const DefaultMaxBodySize = 10 << 20

// errBodyTooLarge is returned when a response exceeds the configured limit.
var errBodyTooLarge = errors.New("response body too large")

// Ensure Fetcher implements tagscrape.Fetcher at compile time.
var _ tagscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies with plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response size in bytes.
// Defaults to DefaultMaxBodySize (10 MiB) if not specified.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the body of req.URL decoded to UTF-8.
// req.Timeout bounds the whole exchange including reading the body.
func (f *Fetcher) Fetch(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = tagscrape.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return "", &tagscrape.FetchError{URL: req.URL, Err: err}
	}
	if f.userAgent != "" {
		httpReq.Header.Set("User-Agent", f.userAgent)
	}
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", &tagscrape.FetchError{URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &tagscrape.FetchError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := f.readBody(resp)
	if err != nil {
		return "", &tagscrape.FetchError{URL: req.URL, Err: err}
	}
	return body, nil
}

// readBody reads at most maxBodySize bytes and transcodes them to UTF-8
// based on the Content-Type header and any <meta charset> in the document.
func (f *Fetcher) readBody(resp *http.Response) (string, error) {
	limited := io.LimitReader(resp.Body, f.maxBodySize+1)

	r, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	// The decoder may change the byte count, so the limit is checked on the
	// raw stream as well.
	if lr, ok := limited.(*io.LimitedReader); ok && lr.N <= 0 {
		return "", errBodyTooLarge
	}
	return string(body), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
