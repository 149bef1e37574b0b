// Package alphavantage provides a client for the Alpha Vantage intraday quotes API.
package alphavantage

import "time"

const (
	// DefaultBaseURL is the public Alpha Vantage endpoint host.
	DefaultBaseURL = "https://www.alphavantage.co"
	// FunctionIntraday is the fixed function selector sent with every request.
	FunctionIntraday = "TIME_SERIES_INTRADAY"
	// OutputSizeCompact returns the latest 100 data points.
	OutputSizeCompact = "compact"
	// OutputSizeFull returns the trailing 30 days of intraday data.
	OutputSizeFull = "full"
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey     string        // API key for authentication, never compiled in
	BaseURL    string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	OutputSize string        // "compact" or "full"
	Timeout    time.Duration // HTTP request timeout, 0 keeps the net/http default
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.OutputSize != OutputSizeFull {
		c.OutputSize = OutputSizeCompact
	}
	return c
}
