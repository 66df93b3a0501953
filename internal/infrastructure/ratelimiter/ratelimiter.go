package ratelimiter

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	bucketKeyPrefix  = "rl:bucket:"
	defaultSourceKey = "X-RateLimit-Key"
)

// Decision is the outcome of one Take.
type Decision struct {
	Allowed   bool
	Remaining int
	Limit     int
	// RetryAfter is how long until the next token, zero when Allowed.
	RetryAfter time.Duration
}

type Limiter interface {
	Take(ctx context.Context, sourceKey string) Decision
	GetSourceKey(r *http.Request) string
}

// RateLimiter is a token bucket per source key. Bucket state lives in the
// store so a shared store gives a shared limit.
type RateLimiter struct {
	rule            Rule
	store           Store
	sourceHeaderKey string
	now             func() time.Time
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	Store            Store
	TTL              time.Duration
	SourceHeaderKey  string
	Clock            func() time.Time
}

func New(options Options) *RateLimiter {
	if options.Store == nil {
		options.Store = NewInMemory()
	}
	if options.TTL <= 0 {
		options.TTL = 10 * time.Second
	}
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	var interval time.Duration
	if options.MaxRatePerSecond > 0 {
		interval = time.Second / time.Duration(options.MaxRatePerSecond)
	}

	return &RateLimiter{
		rule: Rule{
			Interval: interval,
			Burst:    options.MaxBurst,
			TTL:      options.TTL,
		},
		store:           options.Store,
		sourceHeaderKey: options.SourceHeaderKey,
		now:             options.Clock,
	}
}

// Take spends one token of sourceKey if one is available. A store failure
// lets the request through as if the bucket were full.
func (rl *RateLimiter) Take(ctx context.Context, sourceKey string) Decision {
	now := rl.now()
	decision, err := rl.store.Take(ctx, bucketKeyPrefix+sourceKey, now, rl.rule)
	if err != nil {
		_, decision = rl.rule.take(rl.rule.full(now), now)
		decision.Allowed = true
	}
	return decision
}

func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		// X-Forwarded-For may carry a chain; the first hop is the client.
		if first, _, found := strings.Cut(key, ","); found {
			return strings.TrimSpace(first)
		}
		return key
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
