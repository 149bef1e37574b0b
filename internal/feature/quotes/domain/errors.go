// Package domain defines domain-level errors for the quotes feature.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for fetching and transforming quotes.
// None of them is fatal: upper layers turn them into user-visible notices.
var (
	// ErrNetwork indicates the transport call failed or the provider answered with a non-success status.
	ErrNetwork = errors.New("quotes provider unreachable")

	// ErrSchema indicates the provider body lacks the expected time-series key.
	// This is what an invalid symbol or a rate-limited key looks like.
	ErrSchema = errors.New("unexpected quotes provider response")

	// ErrParse indicates a malformed numeric or time field inside an otherwise well-shaped record.
	ErrParse = errors.New("malformed quote record")

	// ErrEmptySeries indicates there is no data to present.
	ErrEmptySeries = errors.New("no data")

	// ErrInvalidSymbol is returned for an empty or unusable ticker.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidInterval is returned for an interval outside the supported set.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrRateLimited is returned when the local call budget wait is cancelled.
	ErrRateLimited = errors.New("rate limit wait cancelled")
)

// ProviderError is a fetch failure. It keeps any diagnostic text the provider returned.
type ProviderError struct {
	Kind        error  // ErrNetwork or ErrSchema
	Symbol      string // Requested symbol
	Interval    string // Requested interval
	StatusCode  int    // HTTP status, 0 when no response was received
	Note        string // Provider "Note" field, verbatim
	Message     string // Provider "Error Message" field, verbatim
	Information string // Provider "Information" field, verbatim
	Err         error  // Underlying cause, if any
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: symbol=%s interval=%s", e.Kind, e.Symbol, e.Interval)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, " error_message=%q", e.Message)
	}
	if e.Note != "" {
		fmt.Fprintf(&b, " note=%q", e.Note)
	}
	if e.Information != "" {
		fmt.Fprintf(&b, " information=%q", e.Information)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *ProviderError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// HasDiagnostics reports whether the provider sent any explanatory text.
func (e *ProviderError) HasDiagnostics() bool {
	return e.Note != "" || e.Message != "" || e.Information != ""
}

// ParseError describes the first record that failed to parse. The whole batch is rejected with it.
type ParseError struct {
	Key   string // Raw timestamp key of the record
	Field string // "time", "open", "high", "low", "close" or "volume"
	Value string // Offending raw value
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q at %q: %v", e.Field, e.Value, e.Key, e.Err)
	}
	return fmt.Sprintf("parse %s %q at %q", e.Field, e.Value, e.Key)
}

// Unwrap makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Unwrap() []error {
	errs := []error{ErrParse}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
