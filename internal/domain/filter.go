// internal/domain/filter.go
package domain

import (
	"strconv"
	"time"
)

const (
	// DefaultHorizonDays is the forward-looking window used when the
	// caller supplies no horizon, or a non-numeric one.
	DefaultHorizonDays = 30

	defaultMaxRows = 10000
	maxMaxRows     = 200000
)

// Filter carries normalized user-facing query parameters into the
// warehouse fetch layer and the aggregators.
type Filter struct {
	Sites          []string   `json:"sites,omitempty"`
	From           *time.Time `json:"from,omitempty"`
	To             *time.Time `json:"to,omitempty"`
	Statuses       []string   `json:"statuses,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Horizon        int        `json:"horizon,omitempty"`
	OnlyExceptions bool       `json:"only_exceptions,omitempty"`
	MaxRows        int        `json:"max_rows,omitempty"`
}

// ParseHorizon parses a horizon-in-days parameter, falling back to the
// default on absent or non-numeric input. Bounds are the caller's
// responsibility.
func ParseHorizon(raw string) int {
	return ParseHorizonOr(raw, DefaultHorizonDays)
}

// ParseHorizonOr is ParseHorizon with a caller-supplied fallback, for
// deployments that configure their own default window.
func ParseHorizonOr(raw string, def int) int {
	if def <= 0 {
		def = DefaultHorizonDays
	}
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// ClampMaxRows keeps a row cap inside [1, 200000], defaulting when
// unset or unparsable.
func ClampMaxRows(n int) int {
	if n <= 0 {
		return defaultMaxRows
	}
	if n > maxMaxRows {
		return maxMaxRows
	}
	return n
}

// HorizonOrDefault returns the filter's horizon, defaulting when unset.
func (f Filter) HorizonOrDefault() int {
	if f.Horizon <= 0 {
		return DefaultHorizonDays
	}
	return f.Horizon
}

// StatusesOrOpen returns the requested status labels, defaulting to the
// WIP statuses when none were requested, the common dashboard case.
func (f Filter) StatusesOrOpen() []string {
	if len(f.Statuses) > 0 {
		return f.Statuses
	}
	return WIPStatuses
}
