package mock

import (
	"context"

	"github.com/fwojciec/tagscrape"
)

var _ tagscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tagscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req tagscrape.FetchRequest) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
	return f.FetchFn(ctx, req)
}
