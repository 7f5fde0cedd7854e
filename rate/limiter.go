// Package rate provides per-key request throttling backed by token buckets.
package rate

import (
	"sync"
	"time"

	"github.com/fwojciec/tagscrape"
	"golang.org/x/time/rate"
)

var _ tagscrape.RateLimiter = (*KeyedLimiter)(nil)

// KeyedLimiter keeps a separate token bucket for each key, so one client
// exhausting its allowance does not affect others.
//
// A bucket left idle for a full period has refilled completely and is
// indistinguishable from a new one, so such buckets are dropped to keep
// memory bounded by the number of recently active keys.
type KeyedLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter allows n requests per period for each key, with bursts of
// up to n requests.
func NewKeyedLimiter(n int, per time.Duration) *KeyedLimiter {
	if n <= 0 {
		n = 1
	}
	return &KeyedLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(per / time.Duration(n)),
		burst:   n,
		idle:    per,
		Now:     time.Now,
	}
}

// Allow reports whether a request for key may proceed now and consumes a
// token if so.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.Now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of keys currently tracked.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets, at most once per idle period.
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, key)
		}
	}
}
