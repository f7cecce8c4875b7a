// internal/view/cards.go
//
// Thin presentation adapter: shapes KPI envelopes into the card/table
// view-model the frontend renders. No business rules live here and the
// frontend must never recompute classification itself.
package view

import "github.com/fieldserve/serviceops/internal/domain"

// Card is one dashboard KPI card. Display is the pre-formatted value
// for money cards; count and percentage cards render Value directly.
type Card struct {
	Title   string                `json:"title"`
	Hint    string                `json:"hint,omitempty"`
	Color   string                `json:"color"`
	Display string                `json:"display,omitempty"`
	Data    domain.KpiResult      `json:"data"`
	Buckets []domain.AgeingBucket `json:"buckets,omitempty"`
}

var actionColors = map[string]string{
	domain.ActionOK:         "#10b981",
	domain.ActionExpedite:   "#f59e0b",
	domain.ActionTransfer:   "#06b6d4",
	domain.ActionRaisePO:    "#ef4444",
	domain.ActionReallocate: "#8b5cf6",
}

var ageingColors = []string{"#10b981", "#f59e0b", "#ef4444", "#991b1b"}

var priorityColors = map[string]string{
	"Critical": "#dc2626",
	"High":     "#ea580c",
	"Normal":   "#65a30d",
	"Low":      "#6b7280",
}

const fallbackColor = "#6b7280"

// ActionColor returns the badge color for a recommended action.
func ActionColor(action string) string {
	if c, ok := actionColors[action]; ok {
		return c
	}
	return fallbackColor
}

// AgeingColor returns the chart color for an ageing bucket index.
func AgeingColor(bucketIndex int) string {
	if bucketIndex >= 0 && bucketIndex < len(ageingColors) {
		return ageingColors[bucketIndex]
	}
	return fallbackColor
}

// PriorityColor returns the badge color for a work-order priority.
func PriorityColor(priority string) string {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return fallbackColor
}

// Cards lays the dashboard out as the two rows of KPI cards the
// frontend renders.
func Cards(d *domain.Dashboard) []Card {
	return []Card{
		{Title: "Open Work Orders", Hint: "Open backlog drift this week = opens − closes in last 7 days", Color: "#2563eb", Data: d.OpenWorkOrders},
		{Title: "Avg Resolution Time", Hint: "Average days from start to completion for completed work orders", Color: "#4f46e5", Data: d.Resolution.KpiResult},
		{Title: "Open WIP Value", Hint: "Total cost of products and services on work in progress jobs", Color: "#9333ea", Display: FormatCurrency(d.WIPValue.Value), Data: d.WIPValue.KpiResult},
		{Title: "Labour and Other Costs", Hint: "Labour cost value with percentage of total WIP", Color: "#0891b2", Display: FormatCurrency(d.LabourCosts.Value), Data: d.LabourCosts.KpiResult},
		{Title: "Parts Cost", Hint: "Parts cost value with percentage of total WIP", Color: "#059669", Display: FormatCurrency(d.PartsCost.Value), Data: d.PartsCost.KpiResult},
		{Title: "Month-to-Date Revenue", Hint: "Revenue from work orders posted this month", Color: "#9333ea", Display: FormatCurrency(d.Revenue.Value), Data: d.Revenue.KpiResult},
		{Title: "Average Gross Margin", Hint: "Average gross margin percentage for posted orders", Color: "#16a34a", Data: d.GrossMargin.KpiResult},
		{Title: "Ageing (Worst)", Hint: "Largest age bucket with open work orders", Color: "#d97706", Data: d.WorstAgeing, Buckets: d.Ageing},
		{Title: "Parts Below Safety", Hint: "OnHand below safety (or min) threshold", Color: "#ea580c", Data: d.BelowSafety},
		{Title: "Critical Items", Hint: "Shortage or below threshold that needs action", Color: "#dc2626", Data: d.Critical},
	}
}
