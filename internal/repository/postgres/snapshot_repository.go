// internal/repository/postgres/snapshot_repository.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/repository"
	"github.com/lib/pq"
)

type snapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// List fetches inventory positions with inbound supply and demand
// aggregated within the horizon. Inventory views speak site codes, so
// filter values are mapped code-side.
func (r *snapshotRepository) List(ctx context.Context, filter domain.Filter) ([]domain.RawSnapshotInput, error) {
	horizon := filter.HorizonOrDefault()

	query := `
        SELECT
            i.item_id,
            i.site,
            COALESCE(i.warehouse, '') AS warehouse,
            COALESCE(i.on_hand, 0) AS on_hand,
            i.available,
            COALESCE(i.safety_stock, 0) AS safety_stock,
            COALESCE(i.min_on_hand, 0) AS min_on_hand,
            COALESCE(s.inbound_qty, 0) AS inbound_qty,
            s.next_eta,
            COALESCE(d.demand_qty, 0) AS demand_qty,
            i.avg_daily_demand
        FROM inventory_positions i
        LEFT JOIN LATERAL (
            SELECT SUM(sl.qty) AS inbound_qty, MIN(sl.eta) AS next_eta
            FROM supply_lines sl
            WHERE sl.item_id = i.item_id
              AND sl.site = i.site
              AND sl.eta IS NOT NULL
              AND sl.eta <= NOW() + make_interval(days => $1)
        ) s ON TRUE
        LEFT JOIN LATERAL (
            SELECT SUM(dl.qty) AS demand_qty
            FROM demand_lines dl
            WHERE dl.item_id = i.item_id
              AND dl.site = i.site
              AND (dl.need_by IS NULL OR dl.need_by <= NOW() + make_interval(days => $1))
        ) d ON TRUE
        WHERE 1=1
    `

	args := []interface{}{horizon}
	var conditions []string
	argCounter := 2

	if len(filter.Sites) > 0 {
		conditions = append(conditions, fmt.Sprintf("i.site = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(domain.MapSitesToCodes(filter.Sites)))
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY i.item_id, i.site"

	var rows []domain.RawSnapshotInput
	err := r.db.withQuerySlot(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing snapshot rows: %w", err)
	}

	return rows, nil
}

type supplyRepository struct {
	db *DB
}

func NewSupplyRepository(db *DB) repository.SupplyRepository {
	return &supplyRepository{db: db}
}

func (r *supplyRepository) List(ctx context.Context, filter domain.Filter) ([]domain.SupplyLine, error) {
	query := `
        SELECT item_id, site, source, ref, qty, eta
        FROM supply_lines
        WHERE (eta IS NULL OR eta <= NOW() + make_interval(days => $1))
    `

	args := []interface{}{filter.HorizonOrDefault()}
	if len(filter.Sites) > 0 {
		query += " AND site = ANY($2::text[])"
		args = append(args, pq.Array(domain.MapSitesToCodes(filter.Sites)))
	}
	query += " ORDER BY item_id, eta NULLS LAST"

	var lines []domain.SupplyLine
	err := r.db.withQuerySlot(ctx, func() error {
		return r.db.SelectContext(ctx, &lines, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing supply lines: %w", err)
	}

	return lines, nil
}

type demandRepository struct {
	db *DB
}

func NewDemandRepository(db *DB) repository.DemandRepository {
	return &demandRepository{db: db}
}

func (r *demandRepository) List(ctx context.Context, filter domain.Filter) ([]domain.DemandLine, error) {
	query := `
        SELECT item_id, site, demand_type, ref, qty, need_by
        FROM demand_lines
        WHERE (need_by IS NULL OR need_by <= NOW() + make_interval(days => $1))
    `

	args := []interface{}{filter.HorizonOrDefault()}
	if len(filter.Sites) > 0 {
		query += " AND site = ANY($2::text[])"
		args = append(args, pq.Array(domain.MapSitesToCodes(filter.Sites)))
	}
	query += " ORDER BY item_id, need_by NULLS LAST"

	var lines []domain.DemandLine
	err := r.db.withQuerySlot(ctx, func() error {
		return r.db.SelectContext(ctx, &lines, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing demand lines: %w", err)
	}

	return lines, nil
}
