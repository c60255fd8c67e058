/*
Package ledger implements revenue/expense aggregation, owner payout
reconciliation, profit calculation, temporal bucketing, and summary
accumulation for charter ledger entries.

PURPOSE:
  A ledger Entry is a date-stamped record of one day's money movement:
  several named income channels, several named expense channels, an
  optional booking reference, and a manually recorded profit figure.
  This package derives everything downstream of those raw numbers.

KEY CONCEPTS IN THIS FILE (types.go):
  - IncomeChannel / ExpenseChannel: fixed, enumerable channel sets
  - Entry: one ledger record (manual or promoted from a booking)
  - OwnerLeg: one payout owed to a boat owner (first/second/transfer)

DESIGN PRINCIPLES:
  1. Channels are closed enumerations, summed in stable order
  2. Absent channel values default to zero; negative values are
     accepted as corrections but flagged with warnings
  3. Computed profit never overwrites the manually recorded figure;
     both are retained side by side for audit

SEE ALSO:
  - aggregate.go: channel sums
  - owner.go: payout reconciliation
  - profit.go: net and projected profit
  - bucket.go: past/current/future classification
  - summary.go: batch totals
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CHANNELS - Fixed income and expense enumerations
// =============================================================================

type IncomeChannel string

const (
	IncomeAgencyCash   IncomeChannel = "agencyCash"
	IncomeAgencyPOS    IncomeChannel = "agencyPos"
	IncomePartnerCash  IncomeChannel = "partnerCash"
	IncomePartnerPOS   IncomeChannel = "partnerPos"
	IncomeBankTransfer IncomeChannel = "bankTransfer"
	IncomePaymentLink  IncomeChannel = "paymentLink"
)

// IncomeChannels lists every income channel in stable order.
var IncomeChannels = []IncomeChannel{
	IncomeAgencyCash,
	IncomeAgencyPOS,
	IncomePartnerCash,
	IncomePartnerPOS,
	IncomeBankTransfer,
	IncomePaymentLink,
}

type ExpenseChannel string

const (
	// Boat cost components, one per owner payout leg.
	ExpenseBoatFirst    ExpenseChannel = "boatFirst"
	ExpenseBoatSecond   ExpenseChannel = "boatSecond"
	ExpenseBoatTransfer ExpenseChannel = "boatTransfer"

	ExpenseSkipper     ExpenseChannel = "skipper"
	ExpenseTransfer    ExpenseChannel = "transfer"
	ExpenseFuel        ExpenseChannel = "fuel"
	ExpenseBoatExpense ExpenseChannel = "boatExpense"
	ExpenseCommission  ExpenseChannel = "commission"
)

// ExpenseChannels lists every expense channel in stable order.
var ExpenseChannels = []ExpenseChannel{
	ExpenseBoatFirst,
	ExpenseBoatSecond,
	ExpenseBoatTransfer,
	ExpenseSkipper,
	ExpenseTransfer,
	ExpenseFuel,
	ExpenseBoatExpense,
	ExpenseCommission,
}

// =============================================================================
// LEDGER ENTRY
// =============================================================================

type EntryID string

// Entry is one expense/income record. Created by manual entry or by
// promoting a pending booking; mutated by edits; never auto-deleted.
type Entry struct {
	ID EntryID

	// Date is nil when the stored value was missing or unparseable.
	// The bucketer places such entries in the current window rather
	// than dropping them.
	Date *time.Time

	// BookingID references the originating booking, when there is one.
	BookingID string

	Income   map[IncomeChannel]decimal.Decimal
	Expenses map[ExpenseChannel]decimal.Decimal

	// ProfitTotal is the human-entered profit figure. It is kept
	// strictly separate from the computed figures in profit.go.
	ProfitTotal decimal.Decimal

	Description string
}

// IncomeAmount returns the value for a channel, zero when absent.
func (e Entry) IncomeAmount(ch IncomeChannel) decimal.Decimal {
	if v, ok := e.Income[ch]; ok {
		return v
	}
	return decimal.Zero
}

// ExpenseAmount returns the value for a channel, zero when absent.
func (e Entry) ExpenseAmount(ch ExpenseChannel) decimal.Decimal {
	if v, ok := e.Expenses[ch]; ok {
		return v
	}
	return decimal.Zero
}

// =============================================================================
// OWNER PAYOUT LEGS
// =============================================================================

// LegKey identifies one of up to three payouts owed to a boat owner.
// The transfer leg is present only when a transfer was part of the
// charter.
type LegKey string

const (
	LegFirst    LegKey = "firstPayment"
	LegSecond   LegKey = "secondPayment"
	LegTransfer LegKey = "transferPayment"
)

// LegKeys lists the legs in presentation order.
var LegKeys = []LegKey{LegFirst, LegSecond, LegTransfer}

// OwnerLeg is one payout to a boat owner for a booking.
type OwnerLeg struct {
	Amount decimal.Decimal

	// Paid is the explicit paid flag. A leg also counts as settled
	// when an acknowledgement signature is attached; both sources are
	// equally authoritative and indistinguishable downstream.
	Paid      bool
	Signature string

	Date    *time.Time
	PaidBy  string
	Invoice string
}

// Settled reports whether the leg counts as paid: explicit flag OR
// acknowledgement artifact. If the two disagree the leg is settled;
// the reconciler keeps both fields so callers can show the conflict.
func (l OwnerLeg) Settled() bool {
	return l.Paid || l.Signature != ""
}
