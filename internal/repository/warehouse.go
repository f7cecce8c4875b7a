// internal/repository/warehouse.go
package repository

import (
	"context"

	"github.com/fieldserve/serviceops/internal/domain"
)

// WorkOrderRepository fetches already-shaped work-order rows from the
// warehouse. The core treats the result as a complete, materialized
// collection; retries and staleness are this layer's problem.
type WorkOrderRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.WorkOrder, error)
	Sites(ctx context.Context) ([]string, error)
}

// SnapshotRepository fetches pre-classification inventory positions,
// with inbound supply and demand already joined within the horizon.
type SnapshotRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.RawSnapshotInput, error)
}

// SupplyRepository fetches inbound supply lines within the horizon.
type SupplyRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.SupplyLine, error)
}

// DemandRepository fetches outbound demand lines.
type DemandRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.DemandLine, error)
}

// Pinger is the minimal keep-alive surface the health endpoints need.
type Pinger interface {
	Ping(ctx context.Context) error
}
