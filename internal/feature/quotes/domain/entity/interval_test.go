package entity

import (
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/quotes/domain"
)

func TestParseInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Interval
		wantErr bool
	}{
		{"", Interval5Min, false},
		{"  ", Interval5Min, false},
		{"1min", Interval1Min, false},
		{"5min", Interval5Min, false},
		{"15min", Interval15Min, false},
		{"30min", Interval30Min, false},
		{"60min", Interval60Min, false},
		{" 30min ", Interval30Min, false},
		{"1day", "", true},
		{"5MIN", "", true},
		{"90min", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervals_DisplayOrderAndCopy(t *testing.T) {
	t.Parallel()

	got := Intervals()
	assert.Equal(t, []Interval{"1min", "5min", "15min", "30min", "60min"}, got)

	got[0] = "mutated"
	assert.Equal(t, Interval1Min, Intervals()[0])
}

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"aapl", "AAPL", false},
		{"  msft ", "MSFT", false},
		{"brk.b", "BRK.B", false},
		{"7203.t", "7203.T", false},
		{"^gspc", "^GSPC", false},
		{"", "", true},
		{"   ", "", true},
		{"AA PL", "", true},
		{"AAPL&apikey=x", "", true},
		{"ABCDEFGHIJKLMNOPQ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeSymbol(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeries_Accessors(t *testing.T) {
	t.Parallel()

	var empty Series
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Len())
	_, ok := empty.Last()
	assert.False(t, ok)
	assert.Empty(t, empty.Tail(10))

	base := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	s := Series{Symbol: "AAPL", Interval: Interval5Min}
	for i := 0; i < 4; i++ {
		s.Points = append(s.Points, Point{
			Quote:        Quote{Time: base.Add(time.Duration(i) * 5 * time.Minute), Close: float64(i + 1)},
			IndicatorSet: IndicatorSet{EMA50: null.FloatFrom(float64(i + 1))},
		})
	}

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []float64{1, 2, 3, 4}, s.Closes())

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 4.0, last.Close)

	tail := s.Tail(2)
	require.Len(t, tail, 2)
	assert.Equal(t, 3.0, tail[0].Close)
	assert.Len(t, s.Tail(10), 4)
	assert.Nil(t, s.Tail(0))
}
