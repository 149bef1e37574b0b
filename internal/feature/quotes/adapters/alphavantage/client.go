package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock_dashboard/internal/feature/quotes/adapters/alphavantage/dto"
	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client はAlpha Vantage外部APIから日中足データを取得するQuoteFetcher実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがQuoteFetcherを実装していることをコンパイル時に検証します。
var _ usecase.QuoteFetcher = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiter が nil の場合はレート制限を行いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	return &Client{cfg: cfg.withDefaults(), client: client, limiter: limiter}
}

// FetchIntraday はAlpha Vantage APIから日中足の時系列データを1回だけ取得し、
// タイムスタンプ文字列をキーとする生データとして返します。リトライは行いません。
func (c *Client) FetchIntraday(ctx context.Context, symbol string, interval entity.Interval) (entity.RawPayload, error) {
	fail := func(kind error, status int, cause error) *domain.ProviderError {
		return &domain.ProviderError{
			Kind:       kind,
			Symbol:     symbol,
			Interval:   interval.String(),
			StatusCode: status,
			Err:        cause,
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return entity.RawPayload{}, fail(domain.ErrNetwork, 0, fmt.Errorf("%w: %w", domain.ErrRateLimited, err))
	}

	// クエリパラメータを追加
	q := url.Values{}
	q.Set("function", FunctionIntraday)
	q.Set("symbol", symbol)
	q.Set("interval", interval.String())
	q.Set("outputsize", c.cfg.OutputSize)
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.RawPayload{}, fail(domain.ErrNetwork, 0, err)
	}

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		slog.Warn("alphavantage request failed", "symbol", symbol, "interval", interval, "error", redact(err))
		return entity.RawPayload{}, fail(domain.ErrNetwork, 0, redact(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	slog.Debug("alphavantage response",
		"symbol", symbol, "interval", interval, "status", res.StatusCode, "elapsed", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return entity.RawPayload{}, fail(domain.ErrNetwork, res.StatusCode, fmt.Errorf("alphavantage http %d", res.StatusCode))
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return entity.RawPayload{}, fail(domain.ErrNetwork, res.StatusCode, err)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.IntradayResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return entity.RawPayload{}, fail(domain.ErrSchema, res.StatusCode, fmt.Errorf("decode body: %w", err))
	}

	key := dto.TimeSeriesKey(interval.String())
	rawSeries, ok := body[key]
	if !ok {
		pe := fail(domain.ErrSchema, res.StatusCode, fmt.Errorf("missing %q", key))
		pe.Note = body.Text(dto.KeyNote)
		pe.Message = body.Text(dto.KeyErrorMessage)
		pe.Information = body.Text(dto.KeyInformation)
		slog.Warn("alphavantage response without time series",
			"symbol", symbol, "interval", interval,
			"error_message", pe.Message, "note", pe.Note, "information", pe.Information)
		return entity.RawPayload{}, pe
	}

	var payload entity.RawPayload
	if err := json.Unmarshal(rawSeries, &payload.Bars); err != nil {
		return entity.RawPayload{}, fail(domain.ErrSchema, res.StatusCode, fmt.Errorf("decode %q: %w", key, err))
	}
	if meta, ok := body[dto.KeyMetaData]; ok {
		if err := json.Unmarshal(meta, &payload.Meta); err != nil {
			return entity.RawPayload{}, fail(domain.ErrSchema, res.StatusCode, fmt.Errorf("decode %q: %w", dto.KeyMetaData, err))
		}
	}
	if payload.Bars == nil {
		payload.Bars = map[string]entity.RawBar{}
	}

	slog.Info("alphavantage fetched", "symbol", symbol, "interval", interval, "records", len(payload.Bars))
	return payload, nil
}

// redact strips the query string from *url.Error so the API key never reaches logs or users.
func redact(err error) error {
	ue, ok := err.(*url.Error)
	if !ok {
		return err
	}
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
	}
	return ue.Err
}
