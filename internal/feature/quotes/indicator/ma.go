// Package indicator computes moving averages over close prices.
package indicator

import "github.com/guregu/null/v6"

const (
	// SMAWindow is the trailing window of the dashboard's simple moving average.
	SMAWindow = 20
	// EMASpan is the span of the dashboard's exponential moving average.
	EMASpan = 50
)

// SMA returns the simple moving average of values over window samples.
//
// out[i] is null for i < window-1. Each window is summed from scratch so the
// result is the exact trailing mean rather than a running difference.
func SMA(values []float64, window int) []null.Float {
	if window <= 0 {
		return nil
	}
	out := make([]null.Float, len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = null.FloatFrom(sum / float64(window))
	}
	return out
}

// EMA returns the exponential moving average of values with smoothing 2/(span+1).
//
// The recursion is seeded with the first value, so every element is defined:
// out[0] = values[0], out[i] = values[i]*α + out[i-1]*(1-α).
func EMA(values []float64, span int) []null.Float {
	if span <= 0 {
		return nil
	}
	out := make([]null.Float, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := Alpha(span)
	ema := values[0]
	out[0] = null.FloatFrom(ema)
	for i := 1; i < len(values); i++ {
		ema = values[i]*alpha + ema*(1-alpha)
		out[i] = null.FloatFrom(ema)
	}
	return out
}

// Alpha returns the smoothing factor equivalent to span.
func Alpha(span int) float64 {
	return 2.0 / float64(span+1)
}
