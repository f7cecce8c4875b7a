package kpi

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/serviceops/internal/domain"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func wipOrder(id string, status string, ageDays int) domain.WorkOrder {
	return domain.WorkOrder{
		WorkOrderID: id,
		Status:      status,
		Priority:    "Normal",
		Site:        "Brisbane",
		CreatedDate: daysAgo(ageDays),
	}
}

func TestOpenWorkOrders(t *testing.T) {
	orders := []domain.WorkOrder{
		wipOrder("WO-1", domain.StatusUnscheduled, 1),
		wipOrder("WO-2", domain.StatusScheduled, 2),
		wipOrder("WO-3", domain.StatusInProgress, 3),
		wipOrder("WO-4", domain.StatusCompleted, 4),
		wipOrder("WO-5", domain.StatusPosted, 5),
		wipOrder("WO-6", domain.StatusCanceled, 6),
	}

	result := OpenWorkOrders(orders)
	assert.Equal(t, 4.0, result.Value)
	assert.Equal(t, 1.0, result.Breakdown[domain.StatusInProgress])
	assert.Equal(t, "4 open work orders", result.Caption)
}

func TestOpenWorkOrders_Empty(t *testing.T) {
	result := OpenWorkOrders(nil)
	assert.Equal(t, 0.0, result.Value)
	assert.NotEmpty(t, result.Caption)
}

func TestAgeingBuckets_Boundaries(t *testing.T) {
	tests := []struct {
		age        int
		wantBucket int
	}{
		{0, 0},
		{13, 0},
		{14, 1},
		{29, 1},
		{30, 2},
		{59, 2},
		{60, 3},
		{120, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("age %d", tt.age), func(t *testing.T) {
			buckets := AgeingBuckets([]domain.WorkOrder{
				wipOrder("WO-1", domain.StatusInProgress, tt.age),
			}, testNow)
			require.Len(t, buckets, 4)
			for i, b := range buckets {
				want := 0
				if i == tt.wantBucket {
					want = 1
				}
				assert.Equalf(t, want, b.Count, "bucket %q", b.Label)
			}
		})
	}
}

func TestAgeingBuckets_Partition(t *testing.T) {
	var orders []domain.WorkOrder
	for i, age := range []int{0, 5, 14, 15, 30, 45, 60, 90, 200} {
		orders = append(orders, wipOrder(fmt.Sprintf("WO-%d", i), domain.StatusScheduled, age))
	}
	// Non-WIP orders must not land in any bucket.
	orders = append(orders, wipOrder("WO-P", domain.StatusPosted, 10))
	orders = append(orders, wipOrder("WO-C", domain.StatusCanceled, 10))

	buckets := AgeingBuckets(orders, testNow)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 9, total)
}

func TestWorstAgeing(t *testing.T) {
	orders := []domain.WorkOrder{
		wipOrder("WO-1", domain.StatusInProgress, 5),
		wipOrder("WO-2", domain.StatusInProgress, 40),
		wipOrder("WO-3", domain.StatusInProgress, 45),
	}
	result := WorstAgeing(AgeingBuckets(orders, testNow))
	assert.Equal(t, 2.0, result.Value)
	assert.Equal(t, "30-60 days", result.Caption)

	empty := WorstAgeing(AgeingBuckets(nil, testNow))
	assert.Equal(t, 0.0, empty.Value)
}

func TestWeeklyTrend(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusScheduled, CreatedDate: daysAgo(2)},
		{WorkOrderID: "WO-2", Status: domain.StatusScheduled, CreatedDate: daysAgo(6)},
		{WorkOrderID: "WO-3", Status: domain.StatusScheduled, CreatedDate: daysAgo(10)},
		{WorkOrderID: "WO-4", Status: domain.StatusPosted, CreatedDate: daysAgo(20), ClosedDate: tp(daysAgo(3))},
	}

	trend := WeeklyTrend(orders, testNow)
	assert.Equal(t, 2, trend.OpensThisWeek)
	assert.Equal(t, 1, trend.ClosedThisWeek)
	assert.Equal(t, 1, trend.NetChange)
	assert.Equal(t, domain.TrendUp, trend.Direction)

	down := WeeklyTrend([]domain.WorkOrder{
		{WorkOrderID: "WO-5", Status: domain.StatusPosted, CreatedDate: daysAgo(30), ClosedDate: tp(daysAgo(1))},
	}, testNow)
	assert.Equal(t, domain.TrendDown, down.Direction)

	flat := WeeklyTrend(nil, testNow)
	assert.Equal(t, domain.TrendFlat, flat.Direction)
	assert.Equal(t, 0, flat.NetChange)
}

func TestWeeklyTrend_WindowBoundary(t *testing.T) {
	// The trailing window is half-open: an order created exactly seven
	// days ago belongs to the previous window.
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusScheduled, CreatedDate: daysAgo(7)},
		{WorkOrderID: "WO-2", Status: domain.StatusScheduled, CreatedDate: testNow},
	}

	trend := WeeklyTrend(orders, testNow)
	assert.Equal(t, 1, trend.OpensThisWeek)
}

func TestMonthToDateRevenue(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Site: "Brisbane", ServiceType: "External",
			ClosedDate: tp(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)), TotalAmount: 100},
		{WorkOrderID: "WO-2", Status: domain.StatusPosted, Site: "Brisbane", ServiceType: "External",
			ClosedDate: tp(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)), TotalAmount: 200},
		{WorkOrderID: "WO-3", Status: domain.StatusPosted, Site: "Melbourne", ServiceType: "Internal",
			ClosedDate: tp(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)), TotalAmount: 300},
		// Previous month, must be excluded.
		{WorkOrderID: "WO-4", Status: domain.StatusPosted, Site: "Brisbane",
			ClosedDate: tp(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)), TotalAmount: 999},
		// Not posted, must be excluded.
		{WorkOrderID: "WO-5", Status: domain.StatusCompleted, Site: "Brisbane",
			ClosedDate: tp(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)), TotalAmount: 999},
	}

	result := MonthToDateRevenue(orders, testNow)
	assert.Equal(t, 600.0, result.Value)

	weekSum := 0.0
	for _, v := range result.Breakdown {
		weekSum += v
	}
	assert.Equal(t, 600.0, weekSum)
	assert.Equal(t, 100.0, result.Breakdown["Week 1"])
	assert.Equal(t, 200.0, result.Breakdown["Week 2"])
	assert.Equal(t, 300.0, result.Breakdown["Week 3"])
	assert.Equal(t, 300.0, result.BySite["Brisbane"])
	assert.Equal(t, 300.0, result.BySite["Melbourne"])
}

func TestMonthToDateRevenue_Empty(t *testing.T) {
	result := MonthToDateRevenue(nil, testNow)
	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "No revenue posted this month", result.Caption)
}

func TestAverageResolutionTime(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Priority: "High", Site: "Brisbane",
			StartDate: tp(daysAgo(10)), ClosedDate: tp(daysAgo(6))},
		{WorkOrderID: "WO-2", Status: domain.StatusPosted, Priority: "Normal", Site: "Brisbane",
			StartDate: tp(daysAgo(20)), ClosedDate: tp(daysAgo(12))},
		// Missing start date: excluded, never counted as a zero-day fix.
		{WorkOrderID: "WO-3", Status: domain.StatusPosted, ClosedDate: tp(daysAgo(1))},
		// Still open: excluded.
		{WorkOrderID: "WO-4", Status: domain.StatusInProgress, StartDate: tp(daysAgo(5))},
	}

	result := AverageResolutionTime(orders, testNow)
	assert.Equal(t, 6.0, result.Value)
	assert.Equal(t, "Average over 2 completed work orders", result.Caption)
	assert.Equal(t, 4.0, result.ByPriority["High"])
	assert.Equal(t, 8.0, result.ByPriority["Normal"])

	require.Len(t, result.Trend, 4)
	// Points are oldest first; the last window (6 days ago) holds WO-1,
	// the one before (12 days ago) holds WO-2.
	assert.Equal(t, 1, result.Trend[3].Count)
	assert.Equal(t, 4.0, result.Trend[3].Value)
	assert.Equal(t, 1, result.Trend[2].Count)
	assert.Equal(t, 8.0, result.Trend[2].Value)

	require.NotNil(t, result.WeekOverWeek)
	assert.Equal(t, -4.0, *result.WeekOverWeek)
	assert.Equal(t, domain.DeltaDecrease, result.DeltaType)
}

func TestAverageResolutionTime_DimensionsShareValue(t *testing.T) {
	// A priority and a technician carrying the identical string must
	// each still accumulate the order in their own breakdown.
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Priority: "Smith", Site: "Brisbane", Technician: "Smith",
			StartDate: tp(daysAgo(5)), ClosedDate: tp(daysAgo(2))},
	}

	result := AverageResolutionTime(orders, testNow)
	require.Contains(t, result.ByPriority, "Smith")
	require.Contains(t, result.ByTechnician, "Smith")
	assert.Equal(t, 3.0, result.ByPriority["Smith"])
	assert.Equal(t, 3.0, result.ByTechnician["Smith"])
	assert.Equal(t, 3.0, result.BySite["Brisbane"])
}

func TestAverageResolutionTime_Empty(t *testing.T) {
	result := AverageResolutionTime(nil, testNow)
	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "No completed work orders", result.Caption)
	assert.Nil(t, result.WeekOverWeek)
}

func TestCostSplit_SumsToHundred(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusInProgress, TotalLabour: 333.33, TotalParts: 666.67},
		{WorkOrderID: "WO-2", Status: domain.StatusScheduled, TotalLabour: 121.21, TotalParts: 55.5},
		// Posted orders stay out of the WIP cost base.
		{WorkOrderID: "WO-3", Status: domain.StatusPosted, TotalLabour: 5000, TotalParts: 5000},
	}

	labour := LabourAndOtherCosts(orders)
	parts := PartsCost(orders)

	assert.InDelta(t, 454.54, labour.Value, 0.001)
	assert.InDelta(t, 722.17, parts.Value, 0.001)
	assert.Equal(t, 100.0, labour.Percentage+parts.Percentage)
}

func TestCostSplit_ZeroCostCaption(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusInProgress},
		{WorkOrderID: "WO-2", Status: domain.StatusScheduled},
	}

	labour := LabourAndOtherCosts(orders)
	parts := PartsCost(orders)

	assert.Equal(t, 0.0, labour.Value)
	assert.Equal(t, 0.0, labour.Percentage)
	assert.Equal(t, "No work orders in progress with costs", labour.Caption)
	assert.Equal(t, 0.0, parts.Value)
	assert.Equal(t, "No work orders in progress with costs", parts.Caption)
}

func TestCostSplit_NoWIP(t *testing.T) {
	labour := LabourAndOtherCosts(nil)
	assert.Equal(t, "No work orders in progress", labour.Caption)

	parts := PartsCost([]domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, TotalParts: 100},
	})
	assert.Equal(t, "No work orders in progress", parts.Caption)
	assert.Equal(t, 0.0, parts.Value)
}

func TestAverageGrossMargin(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Site: "Brisbane", GrossMargin: 20,
			ClosedDate: tp(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))},
		{WorkOrderID: "WO-2", Status: domain.StatusPosted, Site: "Brisbane", GrossMargin: 40,
			ClosedDate: tp(time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))},
		{WorkOrderID: "WO-3", Status: domain.StatusInProgress, GrossMargin: 99},
	}

	result := AverageGrossMargin(orders, testNow)
	assert.Equal(t, 30.0, result.Value)
	assert.Equal(t, 20.0, result.CurrentMonth)
	assert.Equal(t, 30.0, result.BySite["Brisbane"])
}

func TestAverageGrossMargin_DimensionsShareValue(t *testing.T) {
	// Site string colliding with the status string must not merge the
	// two breakdowns.
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Site: domain.StatusPosted, Priority: "Normal", GrossMargin: 25},
	}

	result := AverageGrossMargin(orders, testNow)
	assert.Equal(t, 25.0, result.ByStatus[domain.StatusPosted])
	assert.Equal(t, 25.0, result.BySite[domain.StatusPosted])
	assert.Equal(t, 25.0, result.ByPriority["Normal"])
}

func TestAverageGrossMargin_Empty(t *testing.T) {
	result := AverageGrossMargin(nil, testNow)
	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "No posted work orders", result.Caption)
}

func TestOpenWIPValue(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusInProgress, Site: "Brisbane", Priority: "High",
			WIPValue: 1000, CreatedDate: daysAgo(2)},
		{WorkOrderID: "WO-2", Status: domain.StatusScheduled, Site: "Brisbane", Priority: "Normal",
			WIPValue: 500, CreatedDate: daysAgo(20)},
		{WorkOrderID: "WO-3", Status: domain.StatusPosted, WIPValue: 9999, CreatedDate: daysAgo(1)},
	}

	result := OpenWIPValue(orders, testNow)
	assert.Equal(t, 1500.0, result.Value)
	assert.Equal(t, 1500.0, result.BySite["Brisbane"])
	require.NotNil(t, result.Delta)
	assert.Equal(t, 1.0, *result.Delta)
	assert.Equal(t, domain.DeltaIncrease, result.DeltaType)
}

func TestOpenWIPValue_Empty(t *testing.T) {
	result := OpenWIPValue(nil, testNow)
	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "No work orders in progress", result.Caption)
	assert.Nil(t, result.Delta)
}

func TestSLAPerformance(t *testing.T) {
	orders := []domain.WorkOrder{
		// Closed exactly on the promised date counts as on time.
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Priority: "High", Site: "Brisbane",
			PromisedDate: tp(daysAgo(3)), ClosedDate: tp(daysAgo(3))},
		{WorkOrderID: "WO-2", Status: domain.StatusCompleted, Priority: "Normal", Site: "Brisbane",
			PromisedDate: tp(daysAgo(8)), ClosedDate: tp(daysAgo(10))},
		// Late by 4 days.
		{WorkOrderID: "WO-3", Status: domain.StatusPosted, Priority: "Normal", Site: "Brisbane",
			PromisedDate: tp(daysAgo(6)), ClosedDate: tp(daysAgo(2))},
		// No promised date: excluded.
		{WorkOrderID: "WO-4", Status: domain.StatusPosted, ClosedDate: tp(daysAgo(1))},
		// Still open: excluded.
		{WorkOrderID: "WO-5", Status: domain.StatusInProgress, PromisedDate: tp(daysAgo(1))},
	}

	result := SLAPerformance(orders, testNow)
	assert.Equal(t, 2, result.OnTimeCount)
	assert.Equal(t, 1, result.LateCount)
	assert.InDelta(t, 66.7, result.Value, 0.001)
	assert.Equal(t, 4.0, result.AverageDelayDays)
	assert.Equal(t, "2 of 3 on time", result.Caption)

	require.NotNil(t, result.WeekOverWeek)
	// This week: WO-1 on time, WO-3 late (50%). Last week: WO-2 on time (100%).
	assert.Equal(t, -50.0, *result.WeekOverWeek)
	assert.Equal(t, domain.DeltaDecrease, result.DeltaType)
}

func TestSLAPerformance_DimensionsShareValue(t *testing.T) {
	orders := []domain.WorkOrder{
		{WorkOrderID: "WO-1", Status: domain.StatusPosted, Priority: "Depot", Site: "Depot",
			PromisedDate: tp(daysAgo(3)), ClosedDate: tp(daysAgo(3))},
		{WorkOrderID: "WO-2", Status: domain.StatusPosted, Priority: "Depot", Site: "Depot",
			PromisedDate: tp(daysAgo(5)), ClosedDate: tp(daysAgo(2))},
	}

	result := SLAPerformance(orders, testNow)
	// Both orders must land in both breakdowns: 1 of 2 on time = 50.
	assert.Equal(t, 50.0, result.ByPriority["Depot"])
	assert.Equal(t, 50.0, result.BySite["Depot"])
}

func TestSLAPerformance_Empty(t *testing.T) {
	result := SLAPerformance(nil, testNow)
	assert.Equal(t, 0.0, result.Value)
	assert.Equal(t, "No completed work orders with promised dates", result.Caption)
}
