// internal/domain/kpi.go
package domain

// DeltaType marks the direction of a KPI delta for card rendering.
type DeltaType string

const (
	DeltaIncrease DeltaType = "increase"
	DeltaDecrease DeltaType = "decrease"
)

// KpiResult is the uniform envelope every aggregator returns. Empty or
// filtered-to-empty input produces Value 0 with an explanatory Caption,
// never an error.
type KpiResult struct {
	Value     float64            `json:"value"`
	Delta     *float64           `json:"delta,omitempty"`
	DeltaType DeltaType          `json:"delta_type,omitempty"`
	Caption   string             `json:"caption,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// TrendDirection summarises a rolling-window net change.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// WeeklyTrend compares creations against closures over the trailing
// 7-day window (rolling, not calendar).
type WeeklyTrend struct {
	OpensThisWeek  int            `json:"opens_this_week"`
	ClosedThisWeek int            `json:"closed_this_week"`
	NetChange      int            `json:"net_change"`
	Direction      TrendDirection `json:"trend_direction"`
}

// RevenueKpi is month-to-date posted revenue with its three breakdowns.
// The embedded Breakdown is by calendar week-of-month.
type RevenueKpi struct {
	KpiResult
	BySite        map[string]float64 `json:"by_site,omitempty"`
	ByServiceType map[string]float64 `json:"by_service_type,omitempty"`
}

// WeekAverage is one point of a trailing weekly trend, oldest first.
type WeekAverage struct {
	WeekEnding string  `json:"week_ending"`
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
}

// ResolutionKpi is mean resolution time in days (1 decimal) for posted
// work orders, with per-dimension means and a 4-week trailing trend.
type ResolutionKpi struct {
	KpiResult
	BySite       map[string]float64 `json:"by_site,omitempty"`
	ByPriority   map[string]float64 `json:"by_priority,omitempty"`
	ByTechnician map[string]float64 `json:"by_technician,omitempty"`
	Trend        []WeekAverage      `json:"trend,omitempty"`
	WeekOverWeek *float64           `json:"week_over_week,omitempty"`
}

// CostSplitKpi carries a cost total plus its share of the labour+parts
// base. The two shares always sum to 100 for a non-empty base.
type CostSplitKpi struct {
	KpiResult
	Percentage float64            `json:"percentage"`
	ByStatus   map[string]float64 `json:"by_status,omitempty"`
	BySite     map[string]float64 `json:"by_site,omitempty"`
	ByPriority map[string]float64 `json:"by_priority,omitempty"`
}

// MarginKpi is the mean gross margin over posted orders, plus the mean
// restricted to orders closed in the current calendar month.
type MarginKpi struct {
	KpiResult
	CurrentMonth float64            `json:"current_month"`
	ByStatus     map[string]float64 `json:"by_status,omitempty"`
	BySite       map[string]float64 `json:"by_site,omitempty"`
	ByPriority   map[string]float64 `json:"by_priority,omitempty"`
}

// WIPValueKpi is the open WIP value total. Delta is the count of orders
// created in the trailing 7 days, a coarse growth signal rather than a
// true WIP delta.
type WIPValueKpi struct {
	KpiResult
	ByStatus   map[string]float64 `json:"by_status,omitempty"`
	BySite     map[string]float64 `json:"by_site,omitempty"`
	ByPriority map[string]float64 `json:"by_priority,omitempty"`
}

// SLAKpi is the on-time completion rate for closed orders that carried a
// promised date. AverageDelayDays is computed over late orders only.
type SLAKpi struct {
	KpiResult
	OnTimeCount      int                `json:"on_time_count"`
	LateCount        int                `json:"late_count"`
	AverageDelayDays float64            `json:"average_delay_days"`
	ByPriority       map[string]float64 `json:"by_priority,omitempty"`
	BySite           map[string]float64 `json:"by_site,omitempty"`
	WeekOverWeek     *float64           `json:"week_over_week,omitempty"`
}

// SnapshotSummary is the collection-level rollup of a classified
// snapshot.
type SnapshotSummary struct {
	TotalItems       int            `json:"total_items"`
	CriticalItems    int            `json:"critical_items"`
	ActionBreakdown  map[string]int `json:"action_breakdown"`
	AverageCoverDays int            `json:"average_cover_days"`
}

// SnapshotMetrics is the debug counter block for a snapshot response.
type SnapshotMetrics struct {
	Total       int     `json:"total"`
	BelowSafety int     `json:"below_safety"`
	InboundRows int     `json:"inbound_rows"`
	InboundSum  float64 `json:"inbound_sum"`
	DemandRows  int     `json:"demand_rows"`
	DemandSum   float64 `json:"demand_sum"`
	GapRows     int     `json:"gap_rows"`
	CoverRows   int     `json:"cover_rows"`
}

// Dashboard aggregates every KPI the dashboard page renders, computed in
// one pass over the fetched collections.
type Dashboard struct {
	OpenWorkOrders KpiResult      `json:"open_work_orders"`
	Ageing         []AgeingBucket `json:"ageing"`
	WorstAgeing    KpiResult      `json:"worst_ageing"`
	Resolution     ResolutionKpi  `json:"avg_resolution_time"`
	WIPValue       WIPValueKpi    `json:"open_wip_value"`
	LabourCosts    CostSplitKpi   `json:"labour_and_other_costs"`
	PartsCost      CostSplitKpi   `json:"parts_cost"`
	Revenue        RevenueKpi     `json:"mtd_revenue"`
	GrossMargin    MarginKpi      `json:"avg_gross_margin"`
	BelowSafety    KpiResult      `json:"parts_below_safety"`
	NoSupply       KpiResult      `json:"below_safety_no_supply"`
	Critical       KpiResult      `json:"critical_items"`
	SLA            SLAKpi         `json:"sla_performance"`
	Trend          WeeklyTrend    `json:"weekly_trend"`
	Snapshot       SnapshotSummary `json:"snapshot_summary"`
}
