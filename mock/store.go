package mock

import (
	"context"

	"github.com/fwojciec/tagscrape"
)

var _ tagscrape.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of tagscrape.ResultStore.
type ResultStore struct {
	SaveExtractionFn   func(ctx context.Context, e *tagscrape.Extraction) error
	LatestExtractionFn func(ctx context.Context) (*tagscrape.Extraction, error)
	ClearExtractionsFn func(ctx context.Context) error
}

func (s *ResultStore) SaveExtraction(ctx context.Context, e *tagscrape.Extraction) error {
	return s.SaveExtractionFn(ctx, e)
}

func (s *ResultStore) LatestExtraction(ctx context.Context) (*tagscrape.Extraction, error) {
	return s.LatestExtractionFn(ctx)
}

func (s *ResultStore) ClearExtractions(ctx context.Context) error {
	return s.ClearExtractionsFn(ctx)
}

var _ tagscrape.RequestLog = (*RequestLog)(nil)

// RequestLog is a mock implementation of tagscrape.RequestLog.
type RequestLog struct {
	RecordRequestFn func(ctx context.Context, entry *tagscrape.LogEntry) error
	FindRequestsFn  func(ctx context.Context, filter tagscrape.LogFilter) ([]*tagscrape.LogEntry, error)
}

func (l *RequestLog) RecordRequest(ctx context.Context, entry *tagscrape.LogEntry) error {
	return l.RecordRequestFn(ctx, entry)
}

func (l *RequestLog) FindRequests(ctx context.Context, filter tagscrape.LogFilter) ([]*tagscrape.LogEntry, error) {
	return l.FindRequestsFn(ctx, filter)
}
