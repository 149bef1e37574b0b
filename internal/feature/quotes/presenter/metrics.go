package presenter

import (
	"fmt"
	"math"
	"time"

	"github.com/guregu/null/v6"

	"stock_dashboard/internal/feature/quotes/domain"
	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// Metric labels, in display order.
const (
	LabelClose  = "Latest Close"
	LabelVolume = "Latest Volume"
	LabelSMA    = "20-Period SMA"
	LabelEMA    = "50-Period EMA"
)

// Metrics are the scalar values of the most recent quote.
type Metrics struct {
	Time   time.Time
	Close  float64
	Volume int64
	SMA20  null.Float
	EMA50  null.Float
}

// MetricDisplay is one labelled, formatted metric tile.
type MetricDisplay struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricsError reports a latest row that cannot be summarized.
type MetricsError struct {
	Field string
	Value string
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("latest %s is not displayable: %s", e.Field, e.Value)
}

// ExtractMetrics returns the metrics of the last point in s.
// It fails with domain.ErrEmptySeries for an empty series and *MetricsError for a malformed latest row.
func ExtractMetrics(s entity.Series) (Metrics, error) {
	last, ok := s.Last()
	if !ok {
		return Metrics{}, domain.ErrEmptySeries
	}
	if math.IsNaN(last.Close) || math.IsInf(last.Close, 0) {
		return Metrics{}, &MetricsError{Field: "close", Value: fmt.Sprint(last.Close)}
	}
	if last.Volume < 0 {
		return Metrics{}, &MetricsError{Field: "volume", Value: fmt.Sprint(last.Volume)}
	}
	if badFloat(last.SMA20) {
		return Metrics{}, &MetricsError{Field: "sma20", Value: fmt.Sprint(last.SMA20.Float64)}
	}
	if badFloat(last.EMA50) {
		return Metrics{}, &MetricsError{Field: "ema50", Value: fmt.Sprint(last.EMA50.Float64)}
	}
	return Metrics{
		Time:   last.Time,
		Close:  last.Close,
		Volume: last.Volume,
		SMA20:  last.SMA20,
		EMA50:  last.EMA50,
	}, nil
}

func badFloat(v null.Float) bool {
	return v.Valid && (math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0))
}

// Display formats the four metric tiles. Undefined indicators show "N/A".
func (m Metrics) Display() []MetricDisplay {
	return []MetricDisplay{
		{Label: LabelClose, Value: FormatCurrency(m.Close)},
		{Label: LabelVolume, Value: FormatVolume(m.Volume)},
		{Label: LabelSMA, Value: FormatNullCurrency(m.SMA20)},
		{Label: LabelEMA, Value: FormatNullCurrency(m.EMA50)},
	}
}
