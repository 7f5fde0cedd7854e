package mock

import (
	"context"

	"github.com/fwojciec/tagscrape"
)

var _ tagscrape.Authenticator = (*Authenticator)(nil)

// Authenticator is a mock implementation of tagscrape.Authenticator.
type Authenticator struct {
	AuthenticateFn func(ctx context.Context, username, password string) error
}

func (a *Authenticator) Authenticate(ctx context.Context, username, password string) error {
	return a.AuthenticateFn(ctx, username, password)
}

var _ tagscrape.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of tagscrape.RateLimiter.
type RateLimiter struct {
	AllowFn func(key string) bool
}

func (l *RateLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}
