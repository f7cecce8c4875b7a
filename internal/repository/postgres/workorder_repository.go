// internal/repository/postgres/workorder_repository.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/repository"
	"github.com/lib/pq"
)

type workOrderRepository struct {
	db *DB
}

func NewWorkOrderRepository(db *DB) repository.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

// List fetches work orders matching the filter. Work orders carry site
// display names, so site filter values are mapped to names; unresolved
// values pass through unchanged.
func (r *workOrderRepository) List(ctx context.Context, filter domain.Filter) ([]domain.WorkOrder, error) {
	query := `
        SELECT
            work_order_id,
            status,
            COALESCE(priority, 'Normal') AS priority,
            COALESCE(service_type, 'Internal') AS service_type,
            COALESCE(site, 'UNKNOWN') AS site,
            COALESCE(technician, '') AS technician,
            created_date,
            start_date,
            promised_date,
            closed_date,
            COALESCE(wip_value, 0) AS wip_value,
            COALESCE(total_parts_cost, 0) AS total_parts_cost,
            COALESCE(total_labour_cost, 0) AS total_labour_cost,
            COALESCE(gross_margin, 0) AS gross_margin,
            COALESCE(total_amount, 0) AS total_amount
        FROM work_orders
        WHERE work_order_id IS NOT NULL
    `

	var args []interface{}
	var conditions []string
	argCounter := 1

	if len(filter.Sites) > 0 {
		conditions = append(conditions, fmt.Sprintf("site = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(domain.MapSitesToNames(filter.Sites)))
		argCounter++
	}

	statuses := filter.StatusesOrOpen()
	if codes := domain.StatusCodesFor(statuses); len(codes) > 0 {
		labels := make([]string, 0, len(codes))
		for _, code := range codes {
			labels = append(labels, domain.StatusLabel(code))
		}
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(labels))
		argCounter++
	}

	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argCounter))
		args = append(args, filter.Priority)
		argCounter++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_date >= $%d", argCounter))
		args = append(args, *filter.From)
		argCounter++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_date <= $%d", argCounter))
		args = append(args, *filter.To)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_date DESC LIMIT $%d", argCounter)
	args = append(args, domain.ClampMaxRows(filter.MaxRows))

	var orders []domain.WorkOrder
	err := r.db.withQuerySlot(ctx, func() error {
		return r.db.SelectContext(ctx, &orders, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing work orders: %w", err)
	}

	return orders, nil
}

// Sites returns the distinct site labels present on work orders.
func (r *workOrderRepository) Sites(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT site
        FROM work_orders
        WHERE site IS NOT NULL AND site <> ''
        ORDER BY site
    `

	var sites []string
	err := r.db.withQuerySlot(ctx, func() error {
		return r.db.SelectContext(ctx, &sites, query)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing sites: %w", err)
	}

	return sites, nil
}
