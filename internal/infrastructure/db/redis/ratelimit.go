package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// RateLimiter is a fixed-window counter. The window key is derived from
// the caller key plus the start of the current window; the counter and
// its expiry are applied in one MULTI/EXEC transaction so a crash can
// never leave a window key without a TTL.
type RateLimiter struct {
	client   *redis.Client
	limit    int64
	interval time.Duration
	now      func() time.Time
}

func NewRateLimiter(client *redis.Client, limit int64, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{client: client, limit: limit, interval: interval, now: time.Now}
}

// Check counts this request against the caller's current window and
// returns domain.ErrTooManyRequests once the limit is exceeded. With
// limit 10, the 11th call inside one window is denied.
func (r *RateLimiter) Check(ctx context.Context, key string) error {
	windowKey := r.windowKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, r.interval+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rate limit incr: %w", err)
	}

	if incr.Val() > r.limit {
		return domain.ErrTooManyRequests
	}
	return nil
}

func (r *RateLimiter) windowKey(key string) string {
	t := r.now().Unix()
	window := t - t%int64(r.interval/time.Second)
	return fmt.Sprintf("ratelimit:%s:%d", key, window)
}
