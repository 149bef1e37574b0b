// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

import (
	"encoding/json"
	"fmt"
)

const (
	// KeyMetaData is the top-level key of the metadata block.
	KeyMetaData = "Meta Data"
	// KeyErrorMessage carries the provider's error text (e.g. invalid symbol).
	KeyErrorMessage = "Error Message"
	// KeyNote carries informational or rate-limit notices.
	KeyNote = "Note"
	// KeyInformation carries the provider's newer rate-limit and premium notices.
	KeyInformation = "Information"
)

// TimeSeriesKey returns the body key holding the series for interval, e.g. "Time Series (5min)".
func TimeSeriesKey(interval string) string {
	return fmt.Sprintf("Time Series (%s)", interval)
}

// IntradayResponse is the top-level TIME_SERIES_INTRADAY body.
// The series key depends on the requested interval, so the body is kept as raw members.
type IntradayResponse map[string]json.RawMessage

// Text returns the string value of key, or "" when absent or not a string.
func (r IntradayResponse) Text(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
