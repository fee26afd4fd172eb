package secondary

import "context"

type RateLimiter interface {
	// Allow records one hit for key and reports whether it is within limits.
	Allow(ctx context.Context, key string) (bool, error)
}
