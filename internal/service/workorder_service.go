// internal/service/workorder_service.go
package service

import (
	"context"

	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/repository"
)

type WorkOrderService struct {
	repo repository.WorkOrderRepository
}

func NewWorkOrderService(repo repository.WorkOrderRepository) *WorkOrderService {
	return &WorkOrderService{repo: repo}
}

func (s *WorkOrderService) List(ctx context.Context, filter domain.Filter) ([]domain.WorkOrder, error) {
	return s.repo.List(ctx, filter)
}

// Sites returns the site labels known to the warehouse, falling back to
// the static alias table when the query yields nothing.
func (s *WorkOrderService) Sites(ctx context.Context) ([]string, error) {
	sites, err := s.repo.Sites(ctx)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		for _, opt := range domain.SiteOptions() {
			sites = append(sites, opt.Name)
		}
	}
	return sites, nil
}
