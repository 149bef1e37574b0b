package entity

import (
	"fmt"
	"regexp"
	"strings"

	"stock_dashboard/internal/feature/quotes/domain"
)

// Interval is an intraday sampling granularity supported by the quotes provider.
type Interval string

const (
	Interval1Min  Interval = "1min"
	Interval5Min  Interval = "5min"
	Interval15Min Interval = "15min"
	Interval30Min Interval = "30min"
	Interval60Min Interval = "60min"

	// DefaultInterval is used when no interval is requested.
	DefaultInterval = Interval5Min

	// DefaultSymbol is the ticker shown on first load.
	DefaultSymbol = "AAPL"

	maxSymbolLen = 16
)

var intervals = []Interval{Interval1Min, Interval5Min, Interval15Min, Interval30Min, Interval60Min}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-^=]+$`)

// Intervals returns the supported intervals in display order.
func Intervals() []Interval {
	out := make([]Interval, len(intervals))
	copy(out, intervals)
	return out
}

// ParseInterval validates s against the supported set. An empty string yields DefaultInterval.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultInterval, nil
	}
	for _, iv := range intervals {
		if string(iv) == s {
			return iv, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidInterval, s)
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return string(i)
}

// NormalizeSymbol trims and upper-cases a ticker and checks it is usable as a query value.
func NormalizeSymbol(s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrInvalidSymbol)
	}
	if len(sym) > maxSymbolLen || !symbolPattern.MatchString(sym) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSymbol, sym)
	}
	return sym, nil
}
