// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured はRedisのホストが設定されていないことを示します。
var ErrNotConfigured = errors.New("redis host not configured")

// pingTimeout は起動時の接続確認の上限時間です。
const pingTimeout = 3 * time.Second

// Config はRedisの接続設定です。
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, defaulting the port to 6379.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(c.Host, port)
}

// NewRedisClient はRedisクライアントを生成し、接続を確認します。
// ホスト未設定の場合は ErrNotConfigured を返します。呼び出し側はキャッシュなしで動作を続けられます。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
