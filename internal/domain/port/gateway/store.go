package gateway

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// RateLimiter enforces sliding-window request budgets
type RateLimiter interface {
	// Allow records one request under key and reports whether it fits the limit
	Allow(ctx context.Context, key string, limit entity.RateLimit) (bool, error)
}

// ActivityStore reads operator-published key/value settings
type ActivityStore interface {
	// Get returns the value stored under key, false when absent
	Get(ctx context.Context, key string) (string, bool, error)
}
