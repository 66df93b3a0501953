package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 200 * time.Millisecond

// takeScript is Rule.take run inside redis. Times are unix microseconds and
// the bucket is a hash of tokens and fill. It returns allowed, remaining and
// the retry wait in microseconds.
var takeScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local burst = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'fill')
local tokens = tonumber(state[1])
local fill = tonumber(state[2])
if tokens == nil or fill == nil then
	tokens = burst
	fill = now
end

if interval > 0 and now > fill then
	local earned = math.floor((now - fill) / interval)
	if earned > 0 then
		if tokens + earned >= burst then
			tokens = burst
			fill = now
		else
			tokens = tokens + earned
			fill = fill + earned * interval
		end
	end
end

local allowed = 0
local retry = 0
if tokens > 0 then
	tokens = tokens - 1
	allowed = 1
elseif interval > 0 then
	retry = math.max(fill + interval - now, 0)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'fill', fill)
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
end
return {allowed, tokens, retry}
`)

// Redis keeps each bucket in one hash so that several instances share limits.
type Redis struct {
	client  redis.UniversalClient
	timeout time.Duration
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{
		client:  client,
		timeout: defaultRedisTimeout,
	}
}

func (r *Redis) Take(ctx context.Context, key string, now time.Time, rule Rule) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := takeScript.Run(ctx, r.client, []string{key},
		now.UnixMicro(),
		rule.Interval.Microseconds(),
		rule.Burst,
		rule.TTL.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("redis take %s: %w", key, err)
	}
	if len(result) != 3 {
		return Decision{}, fmt.Errorf("redis take %s: unexpected reply %v", key, result)
	}

	return Decision{
		Allowed:    result[0] == 1,
		Remaining:  int(result[1]),
		Limit:      rule.Burst,
		RetryAfter: time.Duration(result[2]) * time.Microsecond,
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
