// internal/service/snapshot_service.go
package service

import (
	"context"
	"time"

	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/kpi"
	"github.com/fieldserve/serviceops/internal/planner"
	"github.com/fieldserve/serviceops/internal/repository"
)

type SnapshotService struct {
	snapshot repository.SnapshotRepository
	supply   repository.SupplyRepository
	demand   repository.DemandRepository
	now      func() time.Time
}

func NewSnapshotService(
	snapshot repository.SnapshotRepository,
	supply repository.SupplyRepository,
	demand repository.DemandRepository,
) *SnapshotService {
	return &SnapshotService{
		snapshot: snapshot,
		supply:   supply,
		demand:   demand,
		now:      time.Now,
	}
}

// GetSnapshot fetches and classifies the current inventory position.
// With OnlyExceptions set, rows whose action is OK are dropped.
func (s *SnapshotService) GetSnapshot(ctx context.Context, filter domain.Filter) ([]domain.SnapshotRow, error) {
	raw, err := s.snapshot.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := planner.ClassifyAll(raw)
	if filter.OnlyExceptions {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Action != domain.ActionOK {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	return rows, nil
}

// DebugMetrics exposes diagnostic counters for a classified snapshot.
func (s *SnapshotService) DebugMetrics(rows []domain.SnapshotRow) domain.SnapshotMetrics {
	return kpi.SnapshotDebugMetrics(rows)
}

// Summary rolls a classified snapshot up to collection totals.
func (s *SnapshotService) Summary(rows []domain.SnapshotRow) domain.SnapshotSummary {
	return kpi.SnapshotSummary(rows)
}

// GetSupply lists inbound supply lines within the horizon.
func (s *SnapshotService) GetSupply(ctx context.Context, filter domain.Filter) ([]domain.SupplyLine, error) {
	return s.supply.List(ctx, filter)
}

// GetDemand lists outbound demand lines.
func (s *SnapshotService) GetDemand(ctx context.Context, filter domain.Filter) ([]domain.DemandLine, error) {
	return s.demand.List(ctx, filter)
}
