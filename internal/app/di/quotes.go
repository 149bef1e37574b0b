// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/config"
	"stock_dashboard/internal/feature/quotes/adapters/alphavantage"
	quoteshandler "stock_dashboard/internal/feature/quotes/transport/handler"
	"stock_dashboard/internal/feature/quotes/usecase"
	"stock_dashboard/internal/platform/cache"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// NewAlphaVantageConfig maps the application config onto the provider client config.
func NewAlphaVantageConfig(cfg *config.Config) alphavantage.Config {
	return alphavantage.Config{
		APIKey:     cfg.AlphaVantage.APIKey,
		BaseURL:    cfg.AlphaVantage.BaseURL,
		OutputSize: cfg.AlphaVantage.OutputSize,
		Timeout:    cfg.AlphaVantage.Timeout,
	}
}

// NewLimiter returns a per-minute limiter, or an unlimited one when perMinute is zero.
func NewLimiter(perMinute int) ratelimiter.Limiter {
	if perMinute <= 0 {
		return ratelimiter.Unlimited{}
	}
	return ratelimiter.NewRateLimiter(perMinute, time.Minute)
}

// NewQuoteStore creates the memo store for fetched payloads.
// If Redis is available, it returns a Redis-backed store.
// Otherwise, it falls back to an in-process store.
func NewQuoteStore(rdb *redis.Client, ttl time.Duration) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, ttl)
	}
	return cache.NewMemoryStore(ttl)
}

// NewQuoteFetcher creates a fully configured, memoized Alpha Vantage fetcher.
func NewQuoteFetcher(cfg *config.Config, rdb *redis.Client) usecase.QuoteFetcher {
	avCfg := NewAlphaVantageConfig(cfg)
	httpClient := infrahttp.NewHTTPClient(avCfg.Timeout)
	client := alphavantage.NewClient(avCfg, httpClient, NewLimiter(cfg.RateLimit.PerMinute))
	return cache.NewCachingQuoteFetcher(client, NewQuoteStore(rdb, cfg.Cache.TTL), cfg.Cache.Namespace)
}

// NewDashboardUsecase wires the usecase over the memoized fetcher.
func NewDashboardUsecase(cfg *config.Config, rdb *redis.Client) *usecase.DashboardUsecase {
	return usecase.NewDashboardUsecase(NewQuoteFetcher(cfg, rdb))
}

// NewDashboardHandler wires the HTTP handler of the quotes feature.
func NewDashboardHandler(cfg *config.Config, rdb *redis.Client) *quoteshandler.DashboardHandler {
	return quoteshandler.NewDashboardHandler(NewDashboardUsecase(cfg, rdb))
}
