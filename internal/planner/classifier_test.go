package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserve/serviceops/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestClassify_Actions(t *testing.T) {
	tests := []struct {
		name       string
		in         domain.RawSnapshotInput
		wantAction string
		wantGap    float64
	}{
		{
			name:       "below safety with no inbound raises a PO",
			in:         domain.RawSnapshotInput{OnHand: 5, SafetyStock: 10, InboundQty: 0, DemandQty: 8},
			wantAction: domain.ActionRaisePO,
			wantGap:    3,
		},
		{
			name:       "below safety with inbound expedites",
			in:         domain.RawSnapshotInput{OnHand: 5, SafetyStock: 10, InboundQty: 4, DemandQty: 8},
			wantAction: domain.ActionExpedite,
			wantGap:    0,
		},
		{
			name:       "no safety target and no demand stays OK",
			in:         domain.RawSnapshotInput{OnHand: 0, SafetyStock: 0, MinOnHand: 0, InboundQty: 0, DemandQty: 0},
			wantAction: domain.ActionOK,
			wantGap:    0,
		},
		{
			name:       "healthy stock stays OK",
			in:         domain.RawSnapshotInput{OnHand: 50, SafetyStock: 10, InboundQty: 0, DemandQty: 20},
			wantAction: domain.ActionOK,
			wantGap:    0,
		},
		{
			name:       "min on hand used when safety stock is zero",
			in:         domain.RawSnapshotInput{OnHand: 2, SafetyStock: 0, MinOnHand: 5, InboundQty: 0, DemandQty: 0},
			wantAction: domain.ActionRaisePO,
			wantGap:    0,
		},
		{
			name:       "available overrides on hand as the safety basis",
			in:         domain.RawSnapshotInput{OnHand: 20, Available: f64(3), SafetyStock: 10, InboundQty: 6, DemandQty: 0},
			wantAction: domain.ActionExpedite,
			wantGap:    0,
		},
		{
			name:       "demand gap alone triggers with safety satisfied",
			in:         domain.RawSnapshotInput{OnHand: 15, SafetyStock: 10, InboundQty: 0, DemandQty: 40},
			wantAction: domain.ActionRaisePO,
			wantGap:    25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Classify(tt.in)
			assert.Equal(t, tt.wantAction, row.Action)
			assert.Equal(t, tt.wantGap, row.Gap)
		})
	}
}

func TestClassify_GapNeverNegative(t *testing.T) {
	inputs := []domain.RawSnapshotInput{
		{OnHand: 100, InboundQty: 50, DemandQty: 10},
		{OnHand: 0, InboundQty: 0, DemandQty: 0},
		{OnHand: 10, InboundQty: 0, DemandQty: 10},
	}
	for _, in := range inputs {
		row := Classify(in)
		assert.GreaterOrEqual(t, row.Gap, 0.0)
	}
}

func TestClassify_OnlyReachableActions(t *testing.T) {
	reachable := map[string]bool{
		domain.ActionOK:       true,
		domain.ActionExpedite: true,
		domain.ActionRaisePO:  true,
	}

	// Sweep a grid of inputs and assert Transfer/Reallocate never come
	// out of classification.
	quantities := []float64{0, 1, 5, 10, 100}
	for _, onHand := range quantities {
		for _, safety := range quantities {
			for _, inbound := range quantities {
				for _, demand := range quantities {
					row := Classify(domain.RawSnapshotInput{
						OnHand:      onHand,
						SafetyStock: safety,
						InboundQty:  inbound,
						DemandQty:   demand,
					})
					require.Truef(t, reachable[row.Action],
						"unexpected action %q for onHand=%v safety=%v inbound=%v demand=%v",
						row.Action, onHand, safety, inbound, demand)
				}
			}
		}
	}
}

func TestClassify_NeedsStockGuard(t *testing.T) {
	// Zero safety target and zero demand must never be flagged, whatever
	// the stock position looks like.
	for _, onHand := range []float64{0, 1, 50} {
		row := Classify(domain.RawSnapshotInput{
			OnHand:      onHand,
			Available:   f64(-5),
			SafetyStock: 0,
			MinOnHand:   0,
			DemandQty:   0,
		})
		assert.Equal(t, domain.ActionOK, row.Action)
	}
}

func TestClassify_CoverDays(t *testing.T) {
	t.Run("unknown when no demand rate", func(t *testing.T) {
		row := Classify(domain.RawSnapshotInput{OnHand: 10})
		assert.Nil(t, row.CoverDays)
	})

	t.Run("unknown when demand rate is zero", func(t *testing.T) {
		row := Classify(domain.RawSnapshotInput{OnHand: 10, AvgDailyDemand: f64(0)})
		assert.Nil(t, row.CoverDays)
	})

	t.Run("computed from on hand plus inbound", func(t *testing.T) {
		row := Classify(domain.RawSnapshotInput{OnHand: 10, InboundQty: 5, AvgDailyDemand: f64(3)})
		require.NotNil(t, row.CoverDays)
		assert.InDelta(t, 5.0, *row.CoverDays, 0.0001)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	eta := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	in := domain.RawSnapshotInput{
		ItemID:         "PART-001",
		Site:           "L-QLD",
		OnHand:         5,
		SafetyStock:    10,
		InboundQty:     4,
		NextETA:        &eta,
		DemandQty:      8,
		AvgDailyDemand: f64(2),
	}

	first := Classify(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(in))
	}
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	rows := ClassifyAll([]domain.RawSnapshotInput{
		{ItemID: "A", OnHand: 5, SafetyStock: 10},
		{ItemID: "B", OnHand: 50, SafetyStock: 10},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].ItemID)
	assert.Equal(t, domain.ActionRaisePO, rows[0].Action)
	assert.Equal(t, "B", rows[1].ItemID)
	assert.Equal(t, domain.ActionOK, rows[1].Action)
}
