package ratelimitport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
)

const keyPrefix = "ratelimit:"

var _ secondary.RateLimiter = (*FixedWindowLimiter)(nil)

// FixedWindowLimiter counts hits per key in a window that starts at the first
// hit. A limit of zero or less disables limiting.
type FixedWindowLimiter struct {
	redisClient *redis.Client
	max         int64
	window      time.Duration
	logger      primary.Logger
}

func NewFixedWindowLimiter(redisClient *redis.Client, cfg *config.RateLimitConfig, logger primary.Logger) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		redisClient: redisClient,
		max:         int64(cfg.Max),
		window:      cfg.Window,
		logger:      logger,
	}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.max <= 0 || l.window <= 0 {
		return true, nil
	}

	redisKey := keyPrefix + key
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// A negative TTL means the window was never armed, either because this is
	// the first hit or because an earlier EXPIRE was lost.
	if ttl.Val() < 0 {
		if err := l.redisClient.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	count := incr.Val()
	if count > l.max {
		l.logger.Debug("Rate limit exceeded", "key", key, "count", count, "max", l.max)
		return false, nil
	}
	return true, nil
}
