// internal/domain/snapshot.go
package domain

import "time"

// Recommended replenishment actions. Transfer and Reallocate are valid
// taxonomy members reserved for alternate planner logic; the current
// classifier never emits them.
const (
	ActionOK         = "OK"
	ActionExpedite   = "Expedite"
	ActionRaisePO    = "RaisePO"
	ActionTransfer   = "Transfer"
	ActionReallocate = "Reallocate"
)

// Actions lists every valid action value.
var Actions = []string{ActionOK, ActionExpedite, ActionRaisePO, ActionTransfer, ActionReallocate}

// RawSnapshotInput is one inventory/demand/supply joined row as handed
// over by the warehouse query, before classification. Available and
// AvgDailyDemand are genuinely tri-state in the source data, so they stay
// pointers; every other numeric defaults to 0 when absent upstream.
type RawSnapshotInput struct {
	ItemID         string     `json:"item_id" db:"item_id"`
	Site           string     `json:"site" db:"site"`
	Warehouse      string     `json:"warehouse" db:"warehouse"`
	OnHand         float64    `json:"on_hand" db:"on_hand"`
	Available      *float64   `json:"available" db:"available"`
	SafetyStock    float64    `json:"safety_stock" db:"safety_stock"`
	MinOnHand      float64    `json:"min_on_hand" db:"min_on_hand"`
	InboundQty     float64    `json:"inbound_qty" db:"inbound_qty"`
	NextETA        *time.Time `json:"next_eta" db:"next_eta"`
	DemandQty      float64    `json:"demand_qty" db:"demand_qty"`
	AvgDailyDemand *float64   `json:"avg_daily_demand" db:"avg_daily_demand"`
}

// SnapshotRow is the classified inventory position for one item at one
// site/warehouse. Gap, CoverDays and Action are derived by the planner.
// CoverDays is nil when average daily demand is unknown or zero.
type SnapshotRow struct {
	ItemID      string     `json:"item_id"`
	Site        string     `json:"site"`
	Warehouse   string     `json:"warehouse,omitempty"`
	OnHand      float64    `json:"on_hand"`
	SafetyStock float64    `json:"safety_stock"`
	MinOnHand   float64    `json:"min_on_hand"`
	InboundQty  float64    `json:"inbound_qty"`
	NextETA     *time.Time `json:"next_eta"`
	DemandQty   float64    `json:"demand_qty"`
	Gap         float64    `json:"gap"`
	CoverDays   *float64   `json:"cover_days,omitempty"`
	Action      string     `json:"action"`
}

// SupplyLine is one inbound line (purchase order or transfer order).
type SupplyLine struct {
	ItemID string     `json:"item_id" db:"item_id"`
	Site   string     `json:"site" db:"site"`
	Source string     `json:"source" db:"source"` // PO | TransferOrder
	Ref    string     `json:"ref" db:"ref"`
	Qty    float64    `json:"qty" db:"qty"`
	ETA    *time.Time `json:"eta" db:"eta"`
}

// DemandLine is one outbound demand line.
type DemandLine struct {
	ItemID     string     `json:"item_id" db:"item_id"`
	Site       string     `json:"site" db:"site"`
	DemandType string     `json:"demand_type" db:"demand_type"` // WorkOrder | Sales | Reservation | Internal
	Ref        string     `json:"ref" db:"ref"`
	Qty        float64    `json:"qty" db:"qty"`
	NeedBy     *time.Time `json:"need_by" db:"need_by"`
}
