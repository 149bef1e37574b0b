package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、外部API呼び出しの頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// Unlimited は待機しない Limiter です。レート制限が無効な場合に使用します。
type Unlimited struct{}

// Wait は常に即座に nil を返します。
func (Unlimited) Wait(context.Context) error { return nil }

// RateLimiterは、固定ウィンドウ方式でAPI呼び出しの頻度を制限します。
// 複数のリクエストから同時に呼ばれても安全です。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		after:     time.After,
	}
}

// Waitはレートリミットの上限に達しているかを確認し、必要であればウィンドウの終わりまで待機します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返し、呼び出し枠は消費しません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		sleep, ok := rl.reserve()
		if ok {
			return nil
		}
		slog.Warn("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rl.after(sleep):
		}
	}
}

// reserve は枠があれば消費して true を返し、なければ次のリセットまでの時間を返します。
func (rl *RateLimiter) reserve() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count < rl.limit {
		rl.count++
		return 0, true
	}
	return rl.interval - now.Sub(rl.lastReset), false
}
