package tagscrape

import (
	"context"
	"time"
)

// Status discriminates a Result.
type Status string

// Result statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of a scrape: either Data on success or a Message
// on failure. There is no partial success.
type Result struct {
	Status  Status `json:"status"`
	Data    Data   `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success returns a successful Result carrying data.
func Success(data Data) *Result {
	return &Result{Status: StatusSuccess, Data: data}
}

// Failure returns a failed Result carrying message.
func Failure(message string) *Result {
	return &Result{Status: StatusError, Message: message}
}

// OK reports whether the result is a success.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// ScrapeRequest is the input of a scrape.
type ScrapeRequest struct {
	URL          string
	Elements     []string
	ExtractLinks bool
	Headers      map[string]string
	Timeout      time.Duration
}

// Scraper runs the fetch, validate, extract pipeline.
type Scraper interface {
	// Scrape never returns nil and never panics; every failure is reported
	// through the returned Result.
	Scrape(ctx context.Context, req ScrapeRequest) *Result
}
