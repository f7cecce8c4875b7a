// internal/domain/workorder.go
package domain

import "time"

// Work order lifecycle statuses as they come out of the warehouse.
// Posted is the only fully settled status; Canceled is excluded from
// every cost rollup.
const (
	StatusUnscheduled = "Unscheduled"
	StatusScheduled   = "Scheduled"
	StatusInProgress  = "InProgress"
	StatusCompleted   = "Completed"
	StatusPosted      = "Posted"
	StatusCanceled    = "Canceled"
)

// WIPStatuses are the statuses counted as open / in-flight for cost and
// ageing purposes.
var WIPStatuses = []string{StatusUnscheduled, StatusScheduled, StatusInProgress, StatusCompleted}

// IsWIP reports whether a status is in-flight (not Posted, not Canceled).
func IsWIP(status string) bool {
	switch status {
	case StatusUnscheduled, StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// WorkOrder is one maintenance/service job as read from the warehouse.
// This system never mutates work orders, it only reads snapshots of them.
type WorkOrder struct {
	WorkOrderID   string     `json:"work_order_id" db:"work_order_id"`
	Status        string     `json:"status" db:"status"`
	Priority      string     `json:"priority" db:"priority"`
	ServiceType   string     `json:"service_type" db:"service_type"`
	Site          string     `json:"site" db:"site"`
	Technician    string     `json:"technician" db:"technician"`
	CreatedDate   time.Time  `json:"created_date" db:"created_date"`
	StartDate     *time.Time `json:"start_date" db:"start_date"`
	PromisedDate  *time.Time `json:"promised_date" db:"promised_date"`
	ClosedDate    *time.Time `json:"closed_date" db:"closed_date"`
	WIPValue      float64    `json:"wip_value" db:"wip_value"`
	TotalParts    float64    `json:"total_parts_cost" db:"total_parts_cost"`
	TotalLabour   float64    `json:"total_labour_cost" db:"total_labour_cost"`
	GrossMargin   float64    `json:"gross_margin" db:"gross_margin"`
	TotalAmount   float64    `json:"total_amount" db:"total_amount"`
}

// AgeDays returns whole days between CreatedDate and ClosedDate (or now
// when still open), floored at 0. A zero CreatedDate yields 0 so one bad
// record cannot distort an ageing rollup.
func (wo WorkOrder) AgeDays(now time.Time) int {
	if wo.CreatedDate.IsZero() {
		return 0
	}
	end := now
	if wo.ClosedDate != nil && !wo.ClosedDate.IsZero() {
		end = *wo.ClosedDate
	}
	days := int(end.Sub(wo.CreatedDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AgeingBucket is one range of a fixed, exhaustive partition of
// work-order ages.
type AgeingBucket struct {
	Label   string `json:"label"`
	MinDays int    `json:"min_days"`
	MaxDays *int   `json:"max_days,omitempty"`
	Count   int    `json:"count"`
}
