package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscrape"
)

// Ensure LoggingResultStore implements tagscrape.ResultStore.
var _ tagscrape.ResultStore = (*LoggingResultStore)(nil)

// LoggingResultStore wraps a ResultStore with debug logging.
type LoggingResultStore struct {
	next   tagscrape.ResultStore
	logger *slog.Logger
}

// NewLoggingResultStore creates a new LoggingResultStore.
func NewLoggingResultStore(next tagscrape.ResultStore, logger *slog.Logger) *LoggingResultStore {
	return &LoggingResultStore{next: next, logger: logger}
}

func (s *LoggingResultStore) SaveExtraction(ctx context.Context, e *tagscrape.Extraction) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save extraction",
			"url", e.URL,
			"hash", e.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveExtraction(ctx, e)
}

func (s *LoggingResultStore) LatestExtraction(ctx context.Context) (e *tagscrape.Extraction, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load extraction",
			"found", e != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LatestExtraction(ctx)
}

func (s *LoggingResultStore) ClearExtractions(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("clear extractions",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ClearExtractions(ctx)
}
