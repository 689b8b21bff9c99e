// Package tokencache holds a short-lived bearer token and refreshes it on demand.
package tokencache

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultMargin is subtracted from the server-declared lifetime so a token is
// never used right at its expiry.
const DefaultMargin = 60 * time.Second

// Token is an access token with an absolute expiry
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether t can still be used at now.
func (t *Token) Valid(now time.Time) bool {
	return t != nil && now.Before(t.ExpiresAt)
}

// FetchFunc obtains a fresh token and the lifetime the server declared for it.
type FetchFunc func(ctx context.Context) (accessToken string, lifetime time.Duration, err error)

// Cache stores at most one token. Refreshes are not serialized: callers that
// find the token stale each fetch, and the first to publish wins the slot.
type Cache struct {
	fetch   FetchFunc
	margin  time.Duration
	now     func() time.Time
	current atomic.Pointer[Token]
}

type Option func(*Cache)

// WithMargin overrides DefaultMargin.
func WithMargin(d time.Duration) Option {
	return func(c *Cache) { c.margin = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(fetch FetchFunc, opts ...Option) *Cache {
	c := &Cache{
		fetch:  fetch,
		margin: DefaultMargin,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the cached token if still valid, otherwise fetches a new one.
// A fetch error is returned as is and leaves the cache untouched.
func (c *Cache) Token(ctx context.Context) (*Token, error) {
	seen := c.current.Load()
	if seen.Valid(c.now()) {
		return seen, nil
	}

	access, lifetime, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	tok := &Token{
		AccessToken: access,
		ExpiresAt:   c.now().Add(lifetime - c.margin),
	}

	// Losing the swap means another caller refreshed first; our token is
	// still good for this request.
	c.current.CompareAndSwap(seen, tok)
	return tok, nil
}

// Current returns the stored token without refreshing it. It may be nil or expired.
func (c *Cache) Current() *Token {
	return c.current.Load()
}
