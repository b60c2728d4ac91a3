package llm

import (
	"context"
	"time"

	"github.com/pkarpov/claimsift/internal/cache"
)

// CachedProvider wraps a Provider with response caching keyed by a hash of
// the instructions and prompt. Redelivered items hit the cache instead of
// re-running identical analysis calls.
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// Cached wraps a provider with a response cache.
func Cached(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped provider name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Generate returns a cached response when one exists, otherwise delegates
// and stores the result. Failures are never cached.
func (p *CachedProvider) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	key := cache.Key(p.inner.Name() + "\x00" + instructions + "\x00" + prompt)

	if data, found := p.cache.Get(key); found {
		return string(data), nil
	}

	text, err := p.inner.Generate(ctx, instructions, prompt)
	if err != nil {
		return "", err
	}

	_ = p.cache.Set(key, []byte(text), p.ttl)
	return text, nil
}
