package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscrape"
)

// Ensure LoggingScraper implements tagscrape.Scraper.
var _ tagscrape.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   tagscrape.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next tagscrape.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
// Failures are logged at warn level with their message.
func (s *LoggingScraper) Scrape(ctx context.Context, req tagscrape.ScrapeRequest) (result *tagscrape.Result) {
	defer func(begin time.Time) {
		if result.OK() {
			s.logger.Info("scrape",
				"url", req.URL,
				"elements", req.Elements,
				"links", req.ExtractLinks,
				"keys", len(result.Data),
				"duration", time.Since(begin),
			)
			return
		}
		var message string
		if result != nil {
			message = result.Message
		}
		s.logger.Warn("scrape failed",
			"url", req.URL,
			"message", message,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
