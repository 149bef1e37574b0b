// Package logging はアプリケーション全体で使う slog ロガーを構築します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config はロガーの出力レベルと形式です。
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger は w に出力するロガーを生成します。
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// New は標準出力向けのロガーを生成し、slog のデフォルトとして設定します。
func New(cfg Config) *slog.Logger {
	logger := NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}
