// Package dto defines the JSON response bodies of the quotes API.
package dto

import (
	"time"

	"github.com/guregu/null/v6"

	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/presenter"
)

// PointResponse は1本の足と指標のレスポンスDTOです。未定義の指標は null になります。
type PointResponse struct {
	Time   string     `json:"time"`   // RFC3339, provider time zone
	Open   float64    `json:"open"`   // 始値
	High   float64    `json:"high"`   // 高値
	Low    float64    `json:"low"`    // 安値
	Close  float64    `json:"close"`  // 終値
	Volume int64      `json:"volume"` // 出来高
	SMA20  null.Float `json:"sma20"`
	EMA50  null.Float `json:"ema50"`
}

// QuotesResponse は GET /api/quotes/:symbol の成功レスポンスです。
type QuotesResponse struct {
	Symbol   string                    `json:"symbol"`
	Interval string                    `json:"interval"`
	Title    string                    `json:"title"`
	Points   []PointResponse           `json:"points"`
	Metrics  []presenter.MetricDisplay `json:"metrics"`
	Recent   []presenter.Row           `json:"recent"`
	Notices  []presenter.Notice        `json:"notices"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Notices []presenter.Notice `json:"notices,omitempty"`
}

// NewQuotesResponse converts a view and its series into the API body.
func NewQuotesResponse(v presenter.View, s entity.Series) QuotesResponse {
	points := make([]PointResponse, 0, s.Len())
	for _, p := range s.Points {
		points = append(points, PointResponse{
			Time:   p.Time.Format(time.RFC3339),
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
			SMA20:  p.SMA20,
			EMA50:  p.EMA50,
		})
	}
	notices := v.Notices
	if notices == nil {
		notices = []presenter.Notice{}
	}
	return QuotesResponse{
		Symbol:   v.Symbol,
		Interval: v.Interval.String(),
		Title:    v.Title,
		Points:   points,
		Metrics:  v.Metrics,
		Recent:   v.Rows,
		Notices:  notices,
	}
}
