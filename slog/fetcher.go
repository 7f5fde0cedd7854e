// Package slog provides logging decorators for tagscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscrape"
)

// Ensure LoggingFetcher implements tagscrape.Fetcher.
var _ tagscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   tagscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tagscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, req tagscrape.FetchRequest) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", req.URL,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
