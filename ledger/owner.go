/*
owner.go - Boat-owner payout reconciliation

PURPOSE:
  For one booking, derives what is owed to the boat owner, what has been
  paid, and what remains outstanding, per payment leg. A leg contributes
  to the total due only when its amount is positive; zero and negative
  legs stay in the breakdown as present-but-zero so a UI can show "n/a"
  instead of "missing".

SETTLEMENT:
  A leg is settled when its explicit paid flag is set OR an
  acknowledgement signature is attached. Both are accepted sources of
  truth; the reconciler does not distinguish them downstream.
*/
package ledger

import "github.com/shopspring/decimal"

// LegDetail is one leg's contribution in the reconciled breakdown.
type LegDetail struct {
	Leg OwnerLeg

	// Due is true when the leg's amount counts toward the total due.
	Due bool

	// Settled mirrors OwnerLeg.Settled at reconciliation time.
	Settled bool
}

// OwnerSummary is the derived payout picture for one booking.
type OwnerSummary struct {
	// TotalDue sums leg amounts greater than zero.
	TotalDue decimal.Decimal

	// PaidAmount sums the amounts of settled legs.
	PaidAmount decimal.Decimal

	// OutstandingAmount is max(0, TotalDue - PaidAmount). Never
	// negative, even when a settled leg exceeds the total due.
	OutstandingAmount decimal.Decimal

	// Breakdown keeps every present leg, including zero-amount ones.
	Breakdown map[LegKey]LegDetail
}

// ReconcileOwner builds the payout summary from the booking's legs.
// Legs absent from the map (e.g. no transfer on this charter) are
// omitted from the breakdown entirely.
func ReconcileOwner(legs map[LegKey]OwnerLeg) OwnerSummary {
	summary := OwnerSummary{
		TotalDue:          decimal.Zero,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.Zero,
		Breakdown:         make(map[LegKey]LegDetail, len(legs)),
	}

	for _, key := range LegKeys {
		leg, present := legs[key]
		if !present {
			continue
		}
		due := leg.Amount.IsPositive()
		settled := leg.Settled()

		if due {
			summary.TotalDue = summary.TotalDue.Add(leg.Amount)
		}
		if settled {
			summary.PaidAmount = summary.PaidAmount.Add(leg.Amount)
		}
		summary.Breakdown[key] = LegDetail{Leg: leg, Due: due, Settled: settled}
	}

	summary.OutstandingAmount = decimal.Max(
		decimal.Zero,
		summary.TotalDue.Sub(summary.PaidAmount),
	)
	return summary
}
