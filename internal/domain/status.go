// internal/domain/status.go
package domain

import "strings"

// Warehouse status codes for work orders. The label side is what users
// and the API speak; the code side is what the warehouse query expects.
var statusCodes = map[string]int{
	"unscheduled": 690970000,
	"scheduled":   690970001,
	"inprogress":  690970002,
	"completed":   690970003,
	"posted":      690970004,
	"canceled":    690970005,
}

var statusLabels = map[int]string{
	690970000: StatusUnscheduled,
	690970001: StatusScheduled,
	690970002: StatusInProgress,
	690970003: StatusCompleted,
	690970004: StatusPosted,
	690970005: StatusCanceled,
}

// StatusLabel returns a human-readable label for a warehouse status code.
// Unknown codes fall back to Unscheduled, matching the warehouse view.
func StatusLabel(code int) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}

	return StatusUnscheduled
}

// ParseStatus returns the warehouse code for a given label (case-insensitive).
func ParseStatus(label string) (int, bool) {
	code, ok := statusCodes[strings.ToLower(strings.TrimSpace(label))]

	return code, ok
}

// StatusCodesFor maps status labels to warehouse codes, dropping unknown
// labels instead of erroring.
func StatusCodesFor(labels []string) []int {
	codes := make([]int, 0, len(labels))
	for _, label := range labels {
		if code, ok := ParseStatus(label); ok {
			codes = append(codes, code)
		}
	}
	return codes
}
