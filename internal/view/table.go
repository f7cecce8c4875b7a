// internal/view/table.go
package view

import "github.com/fieldserve/serviceops/internal/domain"

// TableRow is one pre-formatted snapshot line for tabular rendering:
// nullable fields come back as display strings so the frontend never
// has to special-case missing cover or ETA.
type TableRow struct {
	ItemID      string  `json:"item_id"`
	Site        string  `json:"site"`
	Warehouse   string  `json:"warehouse,omitempty"`
	OnHand      float64 `json:"on_hand"`
	SafetyStock float64 `json:"safety_stock"`
	InboundQty  float64 `json:"inbound_qty"`
	DemandQty   float64 `json:"demand_qty"`
	Gap         float64 `json:"gap"`
	Cover       string  `json:"cover"`
	NextETA     string  `json:"next_eta"`
	Action      string  `json:"action"`
	ActionColor string  `json:"action_color"`
}

// SnapshotTable shapes classified snapshot rows into the table
// view-model.
func SnapshotTable(rows []domain.SnapshotRow) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, TableRow{
			ItemID:      r.ItemID,
			Site:        r.Site,
			Warehouse:   r.Warehouse,
			OnHand:      r.OnHand,
			SafetyStock: r.SafetyStock,
			InboundQty:  r.InboundQty,
			DemandQty:   r.DemandQty,
			Gap:         r.Gap,
			Cover:       FormatCoverDays(r.CoverDays),
			NextETA:     FormatDate(r.NextETA),
			Action:      r.Action,
			ActionColor: ActionColor(r.Action),
		})
	}
	return out
}
