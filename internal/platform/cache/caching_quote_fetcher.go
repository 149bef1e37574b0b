// Package cache provides the short-lived memo of raw quote payloads.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/usecase"
)

const (
	// DefaultTTL is how long a successful payload is reused for an identical (symbol, interval).
	DefaultTTL = 5 * time.Minute
	// DefaultNamespace prefixes every memo key.
	DefaultNamespace = "quotes"
)

// Store keeps raw payloads under string keys for a bounded time.
type Store interface {
	// Get returns the payload and true on a live hit. Expired or missing entries report false.
	Get(ctx context.Context, key string) (entity.RawPayload, bool, error)
	// Set stores payload under key, replacing any previous entry.
	Set(ctx context.Context, key string, payload entity.RawPayload) error
}

// CachingQuoteFetcher decorates a QuoteFetcher with a memo keyed by (symbol, interval).
// Only successful payloads are memoized. Failures always reach the provider on the next call.
type CachingQuoteFetcher struct {
	inner     usecase.QuoteFetcher
	store     Store
	namespace string
}

var _ usecase.QuoteFetcher = (*CachingQuoteFetcher)(nil)

// NewCachingQuoteFetcher decorates inner with store. If namespace is empty, it uses "quotes".
// A nil store disables memoization.
func NewCachingQuoteFetcher(inner usecase.QuoteFetcher, store Store, namespace string) *CachingQuoteFetcher {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingQuoteFetcher{
		inner:     inner,
		store:     store,
		namespace: namespace,
	}
}

// FetchIntraday serves a live memo entry if present, otherwise calls the provider and memoizes success.
func (c *CachingQuoteFetcher) FetchIntraday(ctx context.Context, symbol string, interval entity.Interval) (entity.RawPayload, error) {
	if c.store == nil {
		return c.inner.FetchIntraday(ctx, symbol, interval)
	}

	key := c.cacheKey(symbol, interval)

	// 1) Check memo
	p, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("quote memo read failed", "key", key, "error", err)
	} else if ok {
		slog.Debug("quote memo hit", "key", key)
		return p, nil
	}

	// 2) Fallback to provider
	p, err = c.inner.FetchIntraday(ctx, symbol, interval)
	if err != nil {
		return entity.RawPayload{}, err
	}

	// 3) Store in memo (best effort)
	if err := c.store.Set(ctx, key, p); err != nil {
		slog.Warn("quote memo write failed", "key", key, "error", err)
	}
	return p, nil
}

// cacheKey generates the memo key for a (symbol, interval) pair.
func (c *CachingQuoteFetcher) cacheKey(symbol string, interval entity.Interval) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		safe(symbol),
		safe(interval.String()),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
