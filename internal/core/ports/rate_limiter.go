package ports

import "context"

// RateLimiter gates request volume per identity. Check returns
// domain.ErrTooManyRequests when the caller exceeded the window limit.
type RateLimiter interface {
	Check(ctx context.Context, key string) error
}
