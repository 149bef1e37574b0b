// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/guregu/null/v6"
)

// Quote represents one sampled OHLCV observation of a stock symbol.
type Quote struct {
	Time   time.Time // Start of the sampling interval
	Open   float64   // Opening price
	High   float64   // Highest price during the interval
	Low    float64   // Lowest price during the interval
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// IndicatorSet holds the derived per-quote indicators.
// An undefined value is null, never zero.
type IndicatorSet struct {
	SMA20 null.Float // 20-period simple moving average of Close
	EMA50 null.Float // 50-period exponential moving average of Close
}

// Point is a Quote augmented with its indicators.
type Point struct {
	Quote
	IndicatorSet
}

// Series is a chronologically ordered sequence of points for one symbol and interval.
// Points are strictly ascending by Time with no duplicates.
// The zero value is the explicitly empty series.
type Series struct {
	Symbol   string
	Interval Interval
	Location *time.Location
	Points   []Point
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Empty reports whether the series holds no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Last returns the most recent point.
func (s Series) Last() (Point, bool) {
	if s.Empty() {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Closes returns the close prices in chronological order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Tail returns the last n points in chronological order.
func (s Series) Tail(n int) []Point {
	if n <= 0 {
		return nil
	}
	if n > len(s.Points) {
		n = len(s.Points)
	}
	return s.Points[len(s.Points)-n:]
}
