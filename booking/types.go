/*
Package booking holds the read-only booking snapshot the engine computes
over, plus the two derivations that bridge bookings into the ledger:
pending-booking detection and promotion of a booking into a draft entry.

PURPOSE:
  Bookings are owned by the external document store; the engine never
  mutates the snapshot it is handed. A booking carries a charter date,
  one pricing state per boat unit (multi-boat charters have several),
  a transfer flag, and the owner payout legs.

SEE ALSO:
  - pricing: per-unit split/status/propagation
  - ledger: owner reconciliation and entry shapes
  - promote.go: pending detection and entry drafting
*/
package booking

import (
	"time"

	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
)

// Unit is one bookable boat-leg with its own pricing state.
type Unit struct {
	BoatName string
	Pricing  pricing.State
}

// Booking is the read-only snapshot record consumed by the engine.
type Booking struct {
	ID         string
	ClientName string

	// Date is the charter date; nil when missing or unparseable.
	Date *time.Time

	// Units holds one pricing state per boat. Single-boat bookings
	// have exactly one.
	Units []Unit

	// TransferRequired marks that a transfer was part of the charter,
	// which is when the transfer owner leg can exist.
	TransferRequired bool

	// OwnerLegs are the payouts owed to the boat owner for this
	// booking, keyed by leg.
	OwnerLegs map[ledger.LegKey]ledger.OwnerLeg
}

// OwnerSummary reconciles this booking's owner payout legs.
func (b Booking) OwnerSummary() ledger.OwnerSummary {
	return ledger.ReconcileOwner(b.OwnerLegs)
}

// PropagateUnit applies unit i's pricing configuration across all other
// units, preserving each unit's own receipt facts. The result is a new
// booking value; the snapshot is not mutated.
func (b Booking) PropagateUnit(i int) Booking {
	if i < 0 || i >= len(b.Units) || len(b.Units) < 2 {
		return b
	}
	source := b.Units[i].Pricing

	targets := make([]pricing.State, 0, len(b.Units)-1)
	for j, u := range b.Units {
		if j != i {
			targets = append(targets, u.Pricing)
		}
	}
	applied := pricing.Propagate(source, targets)

	out := b
	out.Units = make([]Unit, len(b.Units))
	copy(out.Units, b.Units)
	k := 0
	for j := range out.Units {
		if j == i {
			continue
		}
		out.Units[j].Pricing = applied[k]
		k++
	}
	return out
}
