// internal/view/format.go
package view

import (
	"fmt"
	"math"
	"time"
)

// FormatCoverDays renders cover-days for table cells. Unknown cover is
// a dash, never a zero; anything past 999 days is effectively infinite.
func FormatCoverDays(coverDays *float64) string {
	if coverDays == nil {
		return "-"
	}
	if *coverDays == 0 {
		return "0d"
	}
	if *coverDays > 999 {
		return "∞"
	}
	return fmt.Sprintf("%dd", int(math.Round(*coverDays)))
}

// FormatDate renders a nullable date for table cells.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("Jan 02, 2006")
}

// FormatCurrency renders an amount for KPI cards.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
