// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cache states reported by the health endpoint.
const (
	CacheDisabled = "disabled"
	CacheOK       = "ok"
	CacheDown     = "down"
)

const pingTimeout = time.Second

// PingFunc はキャッシュバックエンドの疎通を確認します。
type PingFunc func(ctx context.Context) error

// NewHealth は /healthz エンドポイント用のハンドラーを返します。
// ping が nil の場合、キャッシュは "disabled" と報告されます。
// キャッシュ停止はサービス停止ではないため、ステータスは常に200です。
func NewHealth(ping PingFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheState(c.Request.Context(), ping)})
		}
	}
}

// Health はキャッシュ確認なしのヘルスチェックです。
func Health(c *gin.Context) {
	NewHealth(nil)(c)
}

func cacheState(ctx context.Context, ping PingFunc) string {
	if ping == nil {
		return CacheDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		return CacheDown
	}
	return CacheOK
}
