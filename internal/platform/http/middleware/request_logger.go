// Package middleware はgin用の共通ミドルウェアを提供します。
package middleware

import (
	"crypto/rand"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// HeaderRequestID はリクエストIDを運ぶヘッダー名です。
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID は gin.Context に保存するリクエストIDのキーです。
const ContextKeyRequestID = "request_id"

var (
	mu      sync.Mutex
	entropy io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// NewRequestID は時刻順に並ぶULID文字列を返します。
// 同一ミリ秒内でも単調増加します。
func NewRequestID() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// RequestID はリクエストIDを付与します。クライアントが送ってきたIDはそのまま使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = NewRequestID()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger は1リクエストにつき1件の slog レコードを出力します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", c.GetString(ContextKeyRequestID),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
