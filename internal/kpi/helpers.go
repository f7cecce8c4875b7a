// internal/kpi/helpers.go
package kpi

import (
	"math"
	"time"
)

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundPct rounds a percentage to the nearest whole point.
func roundPct(v float64) float64 {
	return math.Round(v)
}

// wholeDays returns the whole-day difference b−a, floored at 0 and
// guarded against zero times so one malformed record cannot poison an
// aggregate.
func wholeDays(a, b time.Time) (int, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return d, true
}

// inWindow reports whether t falls in the half-open window (from, to].
// Adjacent trailing windows tile without overlap: an event exactly at
// the lower bound belongs to the previous window, not this one.
func inWindow(t time.Time, from, to time.Time) bool {
	return t.After(from) && !t.After(to)
}

// accum collects a running mean per breakdown key.
type accum struct {
	sum float64
	n   int
}

// addMean accumulates one observation into a per-key mean. Dimensions
// must each be accumulated with their own call: two dimensions sharing
// the same string value are still separate observations.
func addMean(m map[string]*accum, key string, v float64) {
	if key == "" {
		key = "Unknown"
	}
	a := m[key]
	if a == nil {
		a = &accum{}
		m[key] = a
	}
	a.sum += v
	a.n++
}

func meansOf(m map[string]*accum) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, a := range m {
		if a.n > 0 {
			out[k] = round1(a.sum / float64(a.n))
		}
	}
	return out
}

func addTo(m map[string]float64, key string, v float64) {
	if key == "" {
		key = "Unknown"
	}
	m[key] = m[key] + v
}

func dropEmpty(m map[string]float64) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	return m
}
