// internal/service/dashboard_service.go
package service

import (
	"context"
	"time"

	"github.com/fieldserve/serviceops/internal/cache"
	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/kpi"
	"github.com/fieldserve/serviceops/internal/planner"
	"github.com/fieldserve/serviceops/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	workOrders repository.WorkOrderRepository
	snapshot   repository.SnapshotRepository
	cache      cache.DashboardCache
	now        func() time.Time
}

func NewDashboardService(
	workOrders repository.WorkOrderRepository,
	snapshot repository.SnapshotRepository,
	cacheImpl cache.DashboardCache,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		workOrders: workOrders,
		snapshot:   snapshot,
		cache:      cacheImpl,
		now:        time.Now,
	}
}

// GetDashboard assembles every KPI for one render cycle. The three
// collections are fetched concurrently; once materialized, all
// computation is synchronous and pure.
func (s *DashboardService) GetDashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error) {
	if cached, ok, err := s.cache.Get(ctx, filter); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	var (
		openOrders   []domain.WorkOrder
		postedOrders []domain.WorkOrder
		rawRows      []domain.RawSnapshotInput
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		openFilter := filter
		openFilter.Statuses = domain.WIPStatuses
		openOrders, err = s.workOrders.List(gctx, openFilter)
		return err
	})
	g.Go(func() error {
		var err error
		postedFilter := filter
		postedFilter.Statuses = []string{domain.StatusPosted}
		postedOrders, err = s.workOrders.List(gctx, postedFilter)
		return err
	})
	g.Go(func() error {
		var err error
		rawRows, err = s.snapshot.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allOrders := append(append([]domain.WorkOrder{}, openOrders...), postedOrders...)
	rows := planner.ClassifyAll(rawRows)
	now := s.now()

	buckets := kpi.AgeingBuckets(allOrders, now)
	trend := kpi.WeeklyTrend(allOrders, now)

	open := kpi.OpenWorkOrders(allOrders)
	if trend.NetChange != 0 {
		delta := float64(trend.NetChange)
		open.Delta = &delta
		if trend.NetChange > 0 {
			open.DeltaType = domain.DeltaIncrease
		} else {
			open.DeltaType = domain.DeltaDecrease
		}
	}

	dashboard := &domain.Dashboard{
		OpenWorkOrders: open,
		Ageing:         buckets,
		WorstAgeing:    kpi.WorstAgeing(buckets),
		Resolution:     kpi.AverageResolutionTime(postedOrders, now),
		WIPValue:       kpi.OpenWIPValue(allOrders, now),
		LabourCosts:    kpi.LabourAndOtherCosts(allOrders),
		PartsCost:      kpi.PartsCost(allOrders),
		Revenue:        kpi.MonthToDateRevenue(postedOrders, now),
		GrossMargin:    kpi.AverageGrossMargin(postedOrders, now),
		BelowSafety:    kpi.PartsBelowSafety(rows),
		NoSupply:       kpi.BelowSafetyNoSupply(rows),
		Critical:       kpi.CriticalItems(rows, now),
		SLA:            kpi.SLAPerformance(allOrders, now),
		Trend:          trend,
		Snapshot:       kpi.SnapshotSummary(rows),
	}

	if err := s.cache.Set(ctx, filter, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return dashboard, nil
}

// InvalidateCache drops every cached dashboard payload so the next
// request re-derives from fresh warehouse rows.
func (s *DashboardService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
