// Package presenter turns a quote series into chart, metric and table view models.
package presenter

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of an undefined or unusable value.
const NotAvailable = "N/A"

// timeLayout formats timestamps for the chart axis and table.
const timeLayout = "2006-01-02 15:04:05"

// FormatPrice renders v with exactly two decimals, e.g. "154.50".
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatCurrency renders v as US dollars with two decimals, e.g. "$154.50".
func FormatCurrency(v float64) string {
	s := FormatPrice(v)
	if s == NotAvailable {
		return s
	}
	return "$" + s
}

// FormatNullCurrency is FormatCurrency for an optional value.
func FormatNullCurrency(v null.Float) string {
	if !v.Valid {
		return NotAvailable
	}
	return FormatCurrency(v.Float64)
}

// FormatNullPrice is FormatPrice for an optional value.
func FormatNullPrice(v null.Float) string {
	if !v.Valid {
		return NotAvailable
	}
	return FormatPrice(v.Float64)
}

// FormatVolume renders a thousands-grouped integer, e.g. "1,234,567".
func FormatVolume(v int64) string {
	if v < 0 {
		return NotAvailable
	}
	return humanize.Comma(v)
}
