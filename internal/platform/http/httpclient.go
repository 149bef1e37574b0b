// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns / MaxIdleConnsPerHost: アイドル接続数の上限
//   - IdleConnTimeout: アイドル接続の維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト。0 の場合は無制限（net/http の既定）
//
// 注意:
//   - 無制限の場合でも、呼び出し側の context のキャンセルでリクエストは中断される
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
