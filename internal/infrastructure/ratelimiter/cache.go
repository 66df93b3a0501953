package ratelimiter

import (
	"context"
	"time"
)

// Bucket is the token bucket of one source.
type Bucket struct {
	Tokens   int
	LastFill time.Time
}

// Rule is how every bucket of a limiter fills.
type Rule struct {
	// Interval is the time one token takes to earn; zero never refills.
	Interval time.Duration
	Burst    int
	// TTL drops a bucket that has not been touched for that long.
	TTL time.Duration
}

// Store refills and spends buckets. Take refills, spends and saves a bucket
// as one atomic step, so instances sharing a Store share one limit.
// Implementations must be safe for concurrent use.
type Store interface {
	Take(ctx context.Context, key string, now time.Time, rule Rule) (Decision, error)
	Close() error
}

// full is the bucket of a source that has not been seen yet.
func (rule Rule) full(now time.Time) Bucket {
	return Bucket{Tokens: rule.Burst, LastFill: now}
}

// take spends one token of bucket if one is available after the refill.
func (rule Rule) take(bucket Bucket, now time.Time) (Bucket, Decision) {
	bucket = rule.refill(bucket, now)

	decision := Decision{Limit: rule.Burst}
	if bucket.Tokens > 0 {
		bucket.Tokens--
		decision.Allowed = true
	} else {
		decision.RetryAfter = rule.untilNextToken(bucket, now)
	}
	decision.Remaining = bucket.Tokens
	return bucket, decision
}

// refill adds the whole tokens earned since LastFill. LastFill only advances
// by the time those tokens cost, so fractions carry over.
func (rule Rule) refill(bucket Bucket, now time.Time) Bucket {
	if rule.Interval <= 0 {
		return bucket
	}
	elapsed := now.Sub(bucket.LastFill)
	if elapsed <= 0 {
		return bucket
	}

	earned := int(elapsed / rule.Interval)
	if earned == 0 {
		return bucket
	}

	if bucket.Tokens+earned >= rule.Burst {
		return rule.full(now)
	}
	return Bucket{
		Tokens:   bucket.Tokens + earned,
		LastFill: bucket.LastFill.Add(time.Duration(earned) * rule.Interval),
	}
}

func (rule Rule) untilNextToken(bucket Bucket, now time.Time) time.Duration {
	if rule.Interval <= 0 {
		return 0
	}
	wait := bucket.LastFill.Add(rule.Interval).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}
