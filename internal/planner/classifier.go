// internal/planner/classifier.go
package planner

import "github.com/fieldserve/serviceops/internal/domain"

// Classify derives the coverage gap, cover-days and recommended action
// for one inventory position. It is a pure function of the row: no
// clock, no state, no errors.
//
// The shortage signal is belowSafety OR gap>0; either alone is enough
// to flag a row. The needsStock guard keeps items with a zero safety
// target and zero demand from ever being flagged.
func Classify(in domain.RawSnapshotInput) domain.SnapshotRow {
	threshold := in.SafetyStock
	if threshold == 0 {
		threshold = in.MinOnHand
	}

	basisAvailable := in.OnHand
	if in.Available != nil {
		basisAvailable = *in.Available
	}

	belowSafety := basisAvailable < threshold

	gap := in.DemandQty - (in.OnHand + in.InboundQty)
	if gap < 0 {
		gap = 0
	}

	shortage := belowSafety || gap > 0
	needsStock := threshold > 0 || in.DemandQty > 0
	hasInbound := in.InboundQty > 0

	action := domain.ActionOK
	if shortage && needsStock {
		if hasInbound {
			action = domain.ActionExpedite
		} else {
			action = domain.ActionRaisePO
		}
	}

	// Cover-days is unknown, not zero, when there is no usable demand
	// rate. Downstream must treat nil as "-" rather than coercing.
	var coverDays *float64
	if in.AvgDailyDemand != nil && *in.AvgDailyDemand > 0 {
		v := (in.OnHand + in.InboundQty) / *in.AvgDailyDemand
		coverDays = &v
	}

	return domain.SnapshotRow{
		ItemID:      in.ItemID,
		Site:        in.Site,
		Warehouse:   in.Warehouse,
		OnHand:      in.OnHand,
		SafetyStock: in.SafetyStock,
		MinOnHand:   in.MinOnHand,
		InboundQty:  in.InboundQty,
		NextETA:     in.NextETA,
		DemandQty:   in.DemandQty,
		Gap:         gap,
		CoverDays:   coverDays,
		Action:      action,
	}
}

// ClassifyAll classifies a whole fetched collection in order.
func ClassifyAll(rows []domain.RawSnapshotInput) []domain.SnapshotRow {
	out := make([]domain.SnapshotRow, len(rows))
	for i, row := range rows {
		out[i] = Classify(row)
	}
	return out
}
