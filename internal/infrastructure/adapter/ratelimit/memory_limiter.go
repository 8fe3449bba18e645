package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket limiter for single-instance deployments
type MemoryLimiter struct {
	mu           sync.Mutex
	entries      map[string]*memoryEntry
	timeProvider core.TimeProvider
}

var _ gateway.RateLimiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter(timeProvider core.TimeProvider) *MemoryLimiter {
	return &MemoryLimiter{
		entries:      make(map[string]*memoryEntry),
		timeProvider: timeProvider,
	}
}

// Allow takes one token from the bucket of key; the bucket refills Requests tokens per Window
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit entity.RateLimit) (bool, error) {
	if limit.Requests <= 0 || limit.Window <= 0 {
		return true, nil
	}

	now := l.timeProvider.Now()

	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{
			limiter: rate.NewLimiter(rate.Every(limit.Window/time.Duration(limit.Requests)), limit.Requests),
		}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1), nil
}

// Cleanup drops buckets idle for longer than maxIdle and returns how many were removed
func (l *MemoryLimiter) Cleanup(maxIdle time.Duration) int {
	cutoff := l.timeProvider.Now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// StartCleanup evicts idle buckets every interval until ctx is done
func (l *MemoryLimiter) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup(maxIdle)
			}
		}
	}()
}
