// internal/kpi/snapshot.go
package kpi

import (
	"fmt"
	"math"
	"time"

	"github.com/fieldserve/serviceops/internal/domain"
)

// PartsBelowSafety counts rows whose raw on-hand is under safety stock,
// broken down by site. This is intentionally the simpler raw check, not
// the available-aware threshold the classifier uses.
func PartsBelowSafety(rows []domain.SnapshotRow) domain.KpiResult {
	breakdown := make(map[string]float64)
	count := 0
	for _, row := range rows {
		if row.OnHand < row.SafetyStock {
			count++
			addTo(breakdown, row.Site, 1)
		}
	}

	return domain.KpiResult{
		Value:     float64(count),
		Breakdown: dropEmpty(breakdown),
		Caption:   fmt.Sprintf("%d parts below safety stock", count),
	}
}

// BelowSafetyNoSupply is the below-safety subset with no inbound supply
// inside the horizon, broken down by recommended action.
func BelowSafetyNoSupply(rows []domain.SnapshotRow) domain.KpiResult {
	breakdown := make(map[string]float64)
	count := 0
	for _, row := range rows {
		if row.OnHand < row.SafetyStock && row.InboundQty == 0 {
			count++
			addTo(breakdown, row.Action, 1)
		}
	}

	return domain.KpiResult{
		Value:     float64(count),
		Breakdown: dropEmpty(breakdown),
		Caption:   fmt.Sprintf("%d parts need immediate action", count),
	}
}

// CriticalItems counts rows with a demand gap whose inbound supply
// cannot plug it in time: no inbound at all, no ETA, or an ETA more
// than 7 days out. A missing ETA is treated as late.
func CriticalItems(rows []domain.SnapshotRow, now time.Time) domain.KpiResult {
	cutoff := now.AddDate(0, 0, 7)

	breakdown := make(map[string]float64)
	count := 0
	for _, row := range rows {
		if row.Gap <= 0 {
			continue
		}
		noETA := row.NextETA == nil || row.NextETA.IsZero()
		if row.InboundQty == 0 || noETA || row.NextETA.After(cutoff) {
			count++
			addTo(breakdown, row.Site, 1)
		}
	}

	return domain.KpiResult{
		Value:     float64(count),
		Breakdown: dropEmpty(breakdown),
		Caption:   fmt.Sprintf("%d critical items", count),
	}
}

// SnapshotSummary rolls a classified snapshot up to totals: item count,
// rows needing action, action distribution and the mean cover-days over
// rows where cover is known and positive.
func SnapshotSummary(rows []domain.SnapshotRow) domain.SnapshotSummary {
	actionBreakdown := make(map[string]int)
	critical := 0
	coverSum := 0.0
	coverN := 0
	for _, row := range rows {
		actionBreakdown[row.Action]++
		if row.Action != domain.ActionOK {
			critical++
		}
		if row.CoverDays != nil && *row.CoverDays > 0 {
			coverSum += *row.CoverDays
			coverN++
		}
	}

	avgCover := 0
	if coverN > 0 {
		avgCover = int(math.Round(coverSum / float64(coverN)))
	}

	return domain.SnapshotSummary{
		TotalItems:       len(rows),
		CriticalItems:    critical,
		ActionBreakdown:  actionBreakdown,
		AverageCoverDays: avgCover,
	}
}

// SnapshotDebugMetrics computes the diagnostic counters exposed on
// snapshot responses when debug output is requested.
func SnapshotDebugMetrics(rows []domain.SnapshotRow) domain.SnapshotMetrics {
	m := domain.SnapshotMetrics{Total: len(rows)}
	for _, row := range rows {
		threshold := row.SafetyStock
		if threshold == 0 {
			threshold = row.MinOnHand
		}
		if row.OnHand < threshold {
			m.BelowSafety++
		}
		if row.InboundQty > 0 {
			m.InboundRows++
		}
		m.InboundSum += row.InboundQty
		if row.DemandQty > 0 {
			m.DemandRows++
		}
		m.DemandSum += row.DemandQty
		if row.Gap > 0 {
			m.GapRows++
		}
		if row.CoverDays != nil && *row.CoverDays > 0 {
			m.CoverRows++
		}
	}
	return m
}
