// internal/kpi/workorders.go
//
// Pure reducers over work-order collections. Every function filters by
// status itself, takes the clock as an argument, performs no I/O and
// never fails: empty input yields a zero-valued result with a caption.
package kpi

import (
	"fmt"
	"time"

	"github.com/fieldserve/serviceops/internal/domain"
)

// OpenWorkOrders counts work orders in WIP statuses, broken down by
// status.
func OpenWorkOrders(orders []domain.WorkOrder) domain.KpiResult {
	breakdown := make(map[string]float64)
	count := 0
	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		count++
		addTo(breakdown, wo.Status, 1)
	}

	return domain.KpiResult{
		Value:     float64(count),
		Breakdown: dropEmpty(breakdown),
		Caption:   fmt.Sprintf("%d open work orders", count),
	}
}

// ageing bucket bounds, half-open: age<14, 14≤age<30, 30≤age<60, age≥60.
var ageingBounds = []struct {
	label string
	min   int
	max   int // exclusive; <0 means unbounded
}{
	{"0-14 days", 0, 14},
	{"14-30 days", 14, 30},
	{"30-60 days", 30, 60},
	{">60 days", 60, -1},
}

// AgeingBuckets partitions WIP work orders by age into the fixed bucket
// set. The buckets are exhaustive and non-overlapping, so their counts
// always sum to the WIP count.
func AgeingBuckets(orders []domain.WorkOrder, now time.Time) []domain.AgeingBucket {
	buckets := make([]domain.AgeingBucket, len(ageingBounds))
	for i, b := range ageingBounds {
		buckets[i] = domain.AgeingBucket{Label: b.label, MinDays: b.min}
		if b.max >= 0 {
			max := b.max
			buckets[i].MaxDays = &max
		}
	}

	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		age := wo.AgeDays(now)
		for i, b := range ageingBounds {
			if age >= b.min && (b.max < 0 || age < b.max) {
				buckets[i].Count++
				break
			}
		}
	}

	return buckets
}

// WorstAgeing returns the highest-index bucket that still has work
// orders in it.
func WorstAgeing(buckets []domain.AgeingBucket) domain.KpiResult {
	for i := len(buckets) - 1; i >= 0; i-- {
		if buckets[i].Count > 0 {
			return domain.KpiResult{
				Value:   float64(buckets[i].Count),
				Caption: buckets[i].Label,
			}
		}
	}
	caption := ""
	if len(buckets) > 0 {
		caption = buckets[0].Label
	}
	return domain.KpiResult{Value: 0, Caption: caption}
}

// WeeklyTrend compares creations against closures over the trailing
// 7-day window ending now (rolling, not calendar week).
func WeeklyTrend(orders []domain.WorkOrder, now time.Time) domain.WeeklyTrend {
	weekAgo := now.AddDate(0, 0, -7)

	opens, closes := 0, 0
	for _, wo := range orders {
		if !wo.CreatedDate.IsZero() && inWindow(wo.CreatedDate, weekAgo, now) {
			opens++
		}
		if wo.ClosedDate != nil && !wo.ClosedDate.IsZero() && inWindow(*wo.ClosedDate, weekAgo, now) {
			closes++
		}
	}

	net := opens - closes
	direction := domain.TrendFlat
	if net > 0 {
		direction = domain.TrendUp
	} else if net < 0 {
		direction = domain.TrendDown
	}

	return domain.WeeklyTrend{
		OpensThisWeek:  opens,
		ClosedThisWeek: closes,
		NetChange:      net,
		Direction:      direction,
	}
}

// MonthToDateRevenue sums posted revenue for orders closed in the
// current calendar month. The embedded breakdown is by week-of-month,
// computed as contiguous 7-day spans from the month start with the last
// span clipped to the month end.
func MonthToDateRevenue(orders []domain.WorkOrder, now time.Time) domain.RevenueKpi {
	byWeek := make(map[string]float64)
	bySite := make(map[string]float64)
	byService := make(map[string]float64)

	total := 0.0
	count := 0
	for _, wo := range orders {
		if wo.Status != domain.StatusPosted || wo.ClosedDate == nil || wo.ClosedDate.IsZero() {
			continue
		}
		closed := *wo.ClosedDate
		if closed.Year() != now.Year() || closed.Month() != now.Month() {
			continue
		}
		total += wo.TotalAmount
		count++
		week := (closed.Day()-1)/7 + 1
		addTo(byWeek, fmt.Sprintf("Week %d", week), wo.TotalAmount)
		addTo(bySite, wo.Site, wo.TotalAmount)
		addTo(byService, wo.ServiceType, wo.TotalAmount)
	}

	caption := fmt.Sprintf("Revenue from %d posted work orders", count)
	if count == 0 {
		caption = "No revenue posted this month"
	}

	return domain.RevenueKpi{
		KpiResult: domain.KpiResult{
			Value:     total,
			Breakdown: dropEmpty(byWeek),
			Caption:   caption,
		},
		BySite:        dropEmpty(bySite),
		ByServiceType: dropEmpty(byService),
	}
}

// AverageResolutionTime is the mean whole-day span from first arrival to
// completion for posted work orders, rounded to one decimal. Orders
// missing a start date are excluded entirely, not treated as zero-day
// resolutions. The trend covers the four trailing rolling weeks.
func AverageResolutionTime(orders []domain.WorkOrder, now time.Time) domain.ResolutionKpi {
	byPriority := make(map[string]*accum)
	bySite := make(map[string]*accum)
	byTechnician := make(map[string]*accum)

	type resolved struct {
		days   int
		closed time.Time
	}
	var sel []resolved

	sum := 0
	for _, wo := range orders {
		if wo.Status != domain.StatusPosted || wo.StartDate == nil || wo.ClosedDate == nil {
			continue
		}
		days, ok := wholeDays(*wo.StartDate, *wo.ClosedDate)
		if !ok {
			continue
		}
		sel = append(sel, resolved{days: days, closed: *wo.ClosedDate})
		sum += days

		addMean(byPriority, wo.Priority, float64(days))
		addMean(bySite, wo.Site, float64(days))
		addMean(byTechnician, wo.Technician, float64(days))
	}

	if len(sel) == 0 {
		return domain.ResolutionKpi{
			KpiResult: domain.KpiResult{Value: 0, Caption: "No completed work orders"},
		}
	}

	// 4-week trailing trend, oldest first, each point a rolling 7-day
	// window of closures.
	var trend []domain.WeekAverage
	for i := 3; i >= 0; i-- {
		end := now.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -7)
		wSum, wN := 0, 0
		for _, r := range sel {
			if inWindow(r.closed, start, end) {
				wSum += r.days
				wN++
			}
		}
		point := domain.WeekAverage{WeekEnding: end.Format("2006-01-02"), Count: wN}
		if wN > 0 {
			point.Value = round1(float64(wSum) / float64(wN))
		}
		trend = append(trend, point)
	}

	var wow *float64
	last, prev := trend[len(trend)-1], trend[len(trend)-2]
	if last.Count > 0 && prev.Count > 0 {
		d := round1(last.Value - prev.Value)
		wow = &d
	}

	mean := round1(float64(sum) / float64(len(sel)))
	result := domain.ResolutionKpi{
		KpiResult: domain.KpiResult{
			Value:     mean,
			Breakdown: meansOf(byPriority),
			Caption:   fmt.Sprintf("Average over %d completed work orders", len(sel)),
		},
		ByPriority:   meansOf(byPriority),
		BySite:       meansOf(bySite),
		ByTechnician: meansOf(byTechnician),
		Trend:        trend,
		WeekOverWeek: wow,
	}
	if wow != nil {
		result.Delta = wow
		if *wow > 0 {
			result.DeltaType = domain.DeltaIncrease
		} else if *wow < 0 {
			result.DeltaType = domain.DeltaDecrease
		}
	}
	return result
}

// costBase sums labour and parts costs over WIP orders. The split base
// is labour+parts, not the WIPValue field, so the two percentage shares
// are guaranteed to sum to 100.
func costBase(orders []domain.WorkOrder) (labour, parts float64, wipCount int) {
	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		wipCount++
		labour += wo.TotalLabour
		parts += wo.TotalParts
	}
	return labour, parts, wipCount
}

func costCaption(wipCount int, base float64) string {
	if wipCount == 0 {
		return "No work orders in progress"
	}
	if base == 0 {
		return "No work orders in progress with costs"
	}
	return ""
}

// LabourAndOtherCosts totals labour cost across WIP orders with its
// share of the labour+parts base.
func LabourAndOtherCosts(orders []domain.WorkOrder) domain.CostSplitKpi {
	labour, parts, wipCount := costBase(orders)
	base := labour + parts

	byStatus := make(map[string]float64)
	bySite := make(map[string]float64)
	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		addTo(byStatus, wo.Status, wo.TotalLabour)
		addTo(bySite, wo.Site, wo.TotalLabour)
	}

	pct := 0.0
	if base > 0 {
		pct = roundPct(labour / base * 100)
	}

	return domain.CostSplitKpi{
		KpiResult: domain.KpiResult{
			Value:     labour,
			Breakdown: dropEmpty(byStatus),
			Caption:   costCaption(wipCount, base),
		},
		Percentage: pct,
		ByStatus:   dropEmpty(byStatus),
		BySite:     dropEmpty(bySite),
	}
}

// PartsCost totals parts cost across WIP orders. Its percentage is the
// complement of the labour share so the two always sum to 100.
func PartsCost(orders []domain.WorkOrder) domain.CostSplitKpi {
	labour, parts, wipCount := costBase(orders)
	base := labour + parts

	byStatus := make(map[string]float64)
	bySite := make(map[string]float64)
	byPriority := make(map[string]float64)
	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		addTo(byStatus, wo.Status, wo.TotalParts)
		addTo(bySite, wo.Site, wo.TotalParts)
		addTo(byPriority, wo.Priority, wo.TotalParts)
	}

	pct := 0.0
	if base > 0 {
		pct = 100 - roundPct(labour/base*100)
	}

	return domain.CostSplitKpi{
		KpiResult: domain.KpiResult{
			Value:     parts,
			Breakdown: dropEmpty(byStatus),
			Caption:   costCaption(wipCount, base),
		},
		Percentage: pct,
		ByStatus:   dropEmpty(byStatus),
		BySite:     dropEmpty(bySite),
		ByPriority: dropEmpty(byPriority),
	}
}

// AverageGrossMargin is the mean gross margin percentage over posted
// orders, plus the mean restricted to orders closed in the current
// calendar month.
func AverageGrossMargin(orders []domain.WorkOrder, now time.Time) domain.MarginKpi {
	byStatus := make(map[string]*accum)
	bySite := make(map[string]*accum)
	byPriority := make(map[string]*accum)

	sum, count := 0.0, 0
	monthSum, monthCount := 0.0, 0
	for _, wo := range orders {
		if wo.Status != domain.StatusPosted {
			continue
		}
		sum += wo.GrossMargin
		count++

		if wo.ClosedDate != nil && !wo.ClosedDate.IsZero() &&
			wo.ClosedDate.Year() == now.Year() && wo.ClosedDate.Month() == now.Month() {
			monthSum += wo.GrossMargin
			monthCount++
		}

		addMean(byStatus, wo.Status, wo.GrossMargin)
		addMean(bySite, wo.Site, wo.GrossMargin)
		addMean(byPriority, wo.Priority, wo.GrossMargin)
	}

	if count == 0 {
		return domain.MarginKpi{
			KpiResult: domain.KpiResult{Value: 0, Caption: "No posted work orders"},
		}
	}

	currentMonth := 0.0
	if monthCount > 0 {
		currentMonth = round1(monthSum / float64(monthCount))
	}

	return domain.MarginKpi{
		KpiResult: domain.KpiResult{
			Value:     round1(sum / float64(count)),
			Breakdown: meansOf(bySite),
			Caption:   fmt.Sprintf("Average over %d posted work orders", count),
		},
		CurrentMonth: currentMonth,
		ByStatus:     meansOf(byStatus),
		BySite:       meansOf(bySite),
		ByPriority:   meansOf(byPriority),
	}
}

// OpenWIPValue totals WIP value across in-flight orders. The delta is
// the count of orders created in the trailing 7 days, a coarse growth
// signal rather than a true WIP movement.
func OpenWIPValue(orders []domain.WorkOrder, now time.Time) domain.WIPValueKpi {
	byStatus := make(map[string]float64)
	bySite := make(map[string]float64)
	byPriority := make(map[string]float64)

	weekAgo := now.AddDate(0, 0, -7)
	total := 0.0
	wipCount := 0
	created := 0
	for _, wo := range orders {
		if !domain.IsWIP(wo.Status) {
			continue
		}
		wipCount++
		total += wo.WIPValue
		addTo(byStatus, wo.Status, wo.WIPValue)
		addTo(bySite, wo.Site, wo.WIPValue)
		addTo(byPriority, wo.Priority, wo.WIPValue)
		if !wo.CreatedDate.IsZero() && inWindow(wo.CreatedDate, weekAgo, now) {
			created++
		}
	}

	caption := fmt.Sprintf("%d work orders in progress", wipCount)
	if wipCount == 0 {
		caption = "No work orders in progress"
	}

	result := domain.WIPValueKpi{
		KpiResult: domain.KpiResult{
			Value:     total,
			Breakdown: dropEmpty(byStatus),
			Caption:   caption,
		},
		ByStatus:   dropEmpty(byStatus),
		BySite:     dropEmpty(bySite),
		ByPriority: dropEmpty(byPriority),
	}
	if created > 0 {
		delta := float64(created)
		result.Delta = &delta
		result.DeltaType = domain.DeltaIncrease
	}
	return result
}

// SLAPerformance measures on-time completion for Completed/Posted orders
// that carry both a closed and a promised date. Closing exactly on the
// promised date counts as on time; average delay is computed over late
// orders only.
func SLAPerformance(orders []domain.WorkOrder, now time.Time) domain.SLAKpi {
	type outcome struct {
		onTime bool
		closed time.Time
	}
	var sel []outcome

	byPriority := make(map[string]*accum)
	bySite := make(map[string]*accum)

	onTimeCount, lateCount := 0, 0
	delaySum := 0
	for _, wo := range orders {
		if wo.Status != domain.StatusCompleted && wo.Status != domain.StatusPosted {
			continue
		}
		if wo.ClosedDate == nil || wo.ClosedDate.IsZero() || wo.PromisedDate == nil || wo.PromisedDate.IsZero() {
			continue
		}
		onTime := !wo.ClosedDate.After(*wo.PromisedDate)
		sel = append(sel, outcome{onTime: onTime, closed: *wo.ClosedDate})
		if onTime {
			onTimeCount++
		} else {
			lateCount++
			if days, ok := wholeDays(*wo.PromisedDate, *wo.ClosedDate); ok {
				delaySum += days
			}
		}

		hit := 0.0
		if onTime {
			hit = 100
		}
		addMean(byPriority, wo.Priority, hit)
		addMean(bySite, wo.Site, hit)
	}

	if len(sel) == 0 {
		return domain.SLAKpi{
			KpiResult: domain.KpiResult{Value: 0, Caption: "No completed work orders with promised dates"},
		}
	}

	// Week-over-week: on-time rate among last week's closures against
	// the week before.
	rate := func(from, to time.Time) (float64, bool) {
		hits, n := 0, 0
		for _, o := range sel {
			if inWindow(o.closed, from, to) {
				n++
				if o.onTime {
					hits++
				}
			}
		}
		if n == 0 {
			return 0, false
		}
		return float64(hits) / float64(n) * 100, true
	}
	var wow *float64
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	if cur, ok := rate(weekAgo, now); ok {
		if prev, ok := rate(twoWeeksAgo, weekAgo); ok {
			d := round1(cur - prev)
			wow = &d
		}
	}

	avgDelay := 0.0
	if lateCount > 0 {
		avgDelay = round1(float64(delaySum) / float64(lateCount))
	}

	result := domain.SLAKpi{
		KpiResult: domain.KpiResult{
			Value:     round1(float64(onTimeCount) / float64(len(sel)) * 100),
			Breakdown: meansOf(byPriority),
			Caption:   fmt.Sprintf("%d of %d on time", onTimeCount, len(sel)),
		},
		OnTimeCount:      onTimeCount,
		LateCount:        lateCount,
		AverageDelayDays: avgDelay,
		ByPriority:       meansOf(byPriority),
		BySite:           meansOf(bySite),
		WeekOverWeek:     wow,
	}
	if wow != nil {
		result.Delta = wow
		if *wow > 0 {
			result.DeltaType = domain.DeltaIncrease
		} else if *wow < 0 {
			result.DeltaType = domain.DeltaDecrease
		}
	}
	return result
}
