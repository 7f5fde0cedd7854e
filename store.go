package tagscrape

import (
	"context"
	"time"
)

// Extraction is a persisted successful scrape.
type Extraction struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Status      Status    `json:"status"`
	Data        Data      `json:"data"`
	ContentHash string    `json:"content_hash"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if e.Status != StatusSuccess {
		return Errorf(EINVALID, "only successful extractions can be stored")
	}
	return nil
}

// ResultStore keeps the latest successful extraction.
type ResultStore interface {
	// SaveExtraction replaces the latest extraction.
	SaveExtraction(ctx context.Context, e *Extraction) error

	// LatestExtraction returns the most recently saved extraction.
	// Returns ENOTFOUND if nothing is stored.
	LatestExtraction(ctx context.Context) (*Extraction, error)

	// ClearExtractions removes stored extractions. Clearing an empty store
	// is not an error.
	ClearExtractions(ctx context.Context) error
}

// Request log actions.
const (
	ActionScrape   = "scrape"
	ActionGetData  = "get_data"
	ActionDownload = "download_data"
	ActionClear    = "clear_data"
	ActionListLogs = "list_logs"
	ActionError    = "error"
)

// LogEntry is a structured record of one API request.
type LogEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
}

// LogFilter represents a filter for FindRequests.
type LogFilter struct {
	Action *string `json:"action"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RequestLog records API requests.
type RequestLog interface {
	// RecordRequest appends an entry, assigning ID and Timestamp when unset.
	RecordRequest(ctx context.Context, entry *LogEntry) error

	// FindRequests returns entries matching the filter in insertion order.
	FindRequests(ctx context.Context, filter LogFilter) ([]*LogEntry, error)
}

// Authenticator verifies basic-auth credentials.
type Authenticator interface {
	// Authenticate returns EUNAUTHORIZED if the credentials do not match.
	Authenticate(ctx context.Context, username, password string) error
}

// RateLimiter throttles requests per key, typically a client address.
type RateLimiter interface {
	// Allow reports whether a request for key may proceed now.
	Allow(key string) bool
}
