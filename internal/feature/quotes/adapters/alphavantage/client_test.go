package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
)

const intradayBody = `{
	"Meta Data": {
		"1. Information": "Intraday (5min) open, high, low, close prices and volume",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-05-01 16:00:00",
		"4. Interval": "5min",
		"5. Output Size": "Compact",
		"6. Time Zone": "US/Eastern"
	},
	"Time Series (5min)": {
		"2024-05-01 16:00:00": {
			"1. open": "169.5800",
			"2. high": "169.6500",
			"3. low": "169.4000",
			"4. close": "169.6100",
			"5. volume": "1204312"
		},
		"2024-05-01 15:55:00": {
			"1. open": "169.3000",
			"2. high": "169.6000",
			"3. low": "169.2500",
			"4. close": "169.5800",
			"5. volume": "803211"
		}
	}
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{APIKey: "k"}, nil, nil)

	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, OutputSizeCompact, c.cfg.OutputSize)
	assert.Same(t, http.DefaultClient, c.client)
	assert.NotNil(t, c.limiter)

	full := NewClient(Config{APIKey: "k", OutputSize: OutputSizeFull}, nil, nil)
	assert.Equal(t, OutputSizeFull, full.cfg.OutputSize)

	unknown := NewClient(Config{APIKey: "k", OutputSize: "huge"}, nil, nil)
	assert.Equal(t, OutputSizeCompact, unknown.cfg.OutputSize)
}

func TestClient_FetchIntraday_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, FunctionIntraday, q.Get("function"))
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "5min", q.Get("interval"))
		assert.Equal(t, OutputSizeCompact, q.Get("outputsize"))
		assert.Equal(t, "test-key", q.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(intradayBody))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, srv.Client(), nil)

	got, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval5Min)
	require.NoError(t, err)

	require.Len(t, got.Bars, 2)
	bar := got.Bars["2024-05-01 16:00:00"]
	assert.Equal(t, "169.5800", bar.Open)
	assert.Equal(t, "169.6100", bar.Close)
	assert.Equal(t, "1204312", bar.Volume)
	assert.Equal(t, "US/Eastern", got.Meta.TimeZone)
	assert.Equal(t, "AAPL", got.Meta.Symbol)
}

func TestClient_FetchIntraday_EmptySeries(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, http.StatusOK, `{"Time Series (1min)": {}}`)
	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)

	got, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval1Min)
	require.NoError(t, err)
	assert.NotNil(t, got.Bars)
	assert.True(t, got.Empty())
}

func TestClient_FetchIntraday_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"too many requests", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, tt.statusCode, `{"error":"x"}`)
			c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)

			_, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval5Min)
			require.ErrorIs(t, err, domain.ErrNetwork)

			var pe *domain.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.statusCode, pe.StatusCode)
		})
	}
}

func TestClient_FetchIntraday_ProviderDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantNote    string
		wantMessage string
		wantInfo    string
	}{
		{
			name:        "invalid symbol",
			body:        `{"Error Message": "Invalid API call. Please retry or visit the documentation."}`,
			wantMessage: "Invalid API call. Please retry or visit the documentation.",
		},
		{
			name:     "rate limited note",
			body:     `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`,
			wantNote: "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute.",
		},
		{
			name:     "information",
			body:     `{"Information": "We have detected your API key as demo."}`,
			wantInfo: "We have detected your API key as demo.",
		},
		{
			name: "wrong interval key",
			body: `{"Time Series (15min)": {}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, http.StatusOK, tt.body)
			c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)

			_, err := c.FetchIntraday(context.Background(), "ZZZZ", entity.Interval5Min)
			require.ErrorIs(t, err, domain.ErrSchema)

			var pe *domain.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "ZZZZ", pe.Symbol)
			assert.Equal(t, tt.wantNote, pe.Note)
			assert.Equal(t, tt.wantMessage, pe.Message)
			assert.Equal(t, tt.wantInfo, pe.Information)
		})
	}
}

func TestClient_FetchIntraday_InvalidJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`not json`, `[1,2,3]`, `{"Time Series (5min)": [1]}`} {
		srv := newTestServer(t, http.StatusOK, body)
		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)

		_, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval5Min)
		assert.ErrorIs(t, err, domain.ErrSchema, body)
	}
}

func TestClient_FetchIntraday_ConnectionErrorRedactsKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(Config{APIKey: "super-secret", BaseURL: base}, &http.Client{Timeout: time.Second}, nil)

	_, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval5Min)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestClient_FetchIntraday_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, http.StatusOK, intradayBody)
	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchIntraday(ctx, "AAPL", entity.Interval5Min)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, errors.Is(err, context.Canceled))
}

type denyLimiter struct{}

func (denyLimiter) Wait(ctx context.Context) error { return context.DeadlineExceeded }

func TestClient_FetchIntraday_LimiterDenied(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), denyLimiter{})

	_, err := c.FetchIntraday(context.Background(), "AAPL", entity.Interval5Min)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.False(t, called)
}
