package mock

import (
	"context"

	"github.com/fwojciec/tagscrape"
)

var _ tagscrape.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of tagscrape.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, req tagscrape.ScrapeRequest) *tagscrape.Result
}

func (s *Scraper) Scrape(ctx context.Context, req tagscrape.ScrapeRequest) *tagscrape.Result {
	return s.ScrapeFn(ctx, req)
}
