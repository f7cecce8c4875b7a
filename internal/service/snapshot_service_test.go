package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/serviceops/internal/domain"
)

type fakeLineRepos struct{}

func (fakeLineRepos) List(_ context.Context, _ domain.Filter) ([]domain.SupplyLine, error) {
	return []domain.SupplyLine{{ItemID: "PART-1", Site: "L-QLD", Source: "PO", Ref: "PO-100", Qty: 12}}, nil
}

type fakeDemandRepo struct{}

func (fakeDemandRepo) List(_ context.Context, _ domain.Filter) ([]domain.DemandLine, error) {
	return nil, nil
}

func TestGetSnapshot_ClassifiesRows(t *testing.T) {
	snapshot := &fakeSnapshotRepo{rows: []domain.RawSnapshotInput{
		{ItemID: "PART-1", Site: "L-QLD", OnHand: 5, SafetyStock: 10, InboundQty: 4},
		{ItemID: "PART-2", Site: "L-QLD", OnHand: 50, SafetyStock: 10},
	}}
	svc := NewSnapshotService(snapshot, fakeLineRepos{}, fakeDemandRepo{})

	rows, err := svc.GetSnapshot(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ActionExpedite, rows[0].Action)
	assert.Equal(t, domain.ActionOK, rows[1].Action)
}

func TestGetSnapshot_OnlyExceptions(t *testing.T) {
	snapshot := &fakeSnapshotRepo{rows: []domain.RawSnapshotInput{
		{ItemID: "PART-1", Site: "L-QLD", OnHand: 5, SafetyStock: 10},
		{ItemID: "PART-2", Site: "L-QLD", OnHand: 50, SafetyStock: 10},
		{ItemID: "PART-3", Site: "L-VIC", OnHand: 0, SafetyStock: 2, InboundQty: 1},
	}}
	svc := NewSnapshotService(snapshot, fakeLineRepos{}, fakeDemandRepo{})

	rows, err := svc.GetSnapshot(context.Background(), domain.Filter{OnlyExceptions: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PART-1", rows[0].ItemID)
	assert.Equal(t, "PART-3", rows[1].ItemID)
}

func TestSnapshotSummaryAndMetrics(t *testing.T) {
	svc := NewSnapshotService(&fakeSnapshotRepo{}, fakeLineRepos{}, fakeDemandRepo{})

	rows := []domain.SnapshotRow{
		{ItemID: "A", Action: domain.ActionRaisePO, OnHand: 1, SafetyStock: 5},
		{ItemID: "B", Action: domain.ActionOK, OnHand: 10, SafetyStock: 5},
	}

	summary := svc.Summary(rows)
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 1, summary.CriticalItems)

	metrics := svc.DebugMetrics(rows)
	assert.Equal(t, 2, metrics.Total)
	assert.Equal(t, 1, metrics.BelowSafety)
}
