package lru

import (
	"context"

	"github.com/fwojciec/tagscrape"
	"golang.org/x/sync/singleflight"
)

// Ensure CachingFetcher implements tagscrape.Fetcher at compile time.
var _ tagscrape.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher memoizes successful fetches keyed by tagscrape.FetchKey.
// Failures are never cached. Concurrent misses for the same key share a
// single call to the wrapped Fetcher.
type CachingFetcher struct {
	next  tagscrape.Fetcher
	cache *Cache
	group singleflight.Group
}

// NewCachingFetcher wraps next with the given cache.
func NewCachingFetcher(next tagscrape.Fetcher, cache *Cache) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache}
}

// Fetch returns the cached body for req when present and fetches it otherwise.
//
// The shared call is detached from the cancellation of whichever caller
// started it and is bounded by req.Timeout instead. Each caller stops
// waiting when its own ctx is done.
func (f *CachingFetcher) Fetch(ctx context.Context, req tagscrape.FetchRequest) (string, error) {
	key := req.Key().String()
	if body, ok := f.cache.Get(key); ok {
		return body, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		// A flight that finished between the lookup above and DoChan
		// has already stored the body.
		if body, ok := f.cache.Get(key); ok {
			return body, nil
		}
		body, err := f.next.Fetch(shared, req)
		if err != nil {
			return "", err
		}
		f.cache.Put(key, body)
		return body, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &tagscrape.FetchError{URL: req.URL, Err: ctx.Err()}
	}
}

// Cache returns the underlying cache.
func (f *CachingFetcher) Cache() *Cache {
	return f.cache
}
