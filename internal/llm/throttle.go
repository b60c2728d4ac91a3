package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledProvider wraps a Provider with a token-bucket rate limit so the
// sequential pipeline cannot hammer the analysis API across poll cycles.
type ThrottledProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// Throttled wraps a provider with a requests-per-second limit.
func Throttled(inner Provider, rps float64, burst int) *ThrottledProvider {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ThrottledProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name returns the wrapped provider name
func (p *ThrottledProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *ThrottledProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Generate waits for rate limit clearance, then delegates
func (p *ThrottledProvider) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Generate(ctx, instructions, prompt)
}
