/*
types.go - Pricing policies, installments, and pricing state

PURPOSE:
  Defines the closed set of pricing policies and the record shapes the
  engine computes over. Policies are a sum type: the split calculator
  switches exhaustively over them instead of comparing free-form strings,
  so an unknown policy is caught at the boundary (factory), not deep in
  a formula.

KEY CONCEPTS:
  - Policy: the named formula governing how an agreed price splits
  - Installment: one staged payment (first or second) with receipt facts
  - State: agreed price + policy + both installments for one boat-leg
  - PaymentStatus: tri-state derived from receipt flags (status.go)

INVARIANTS:
  - Installment.Amount >= 0 in stored records
  - Installment.Date is set only when Received is true
  - For non-custom policies, first + second == agreed price within one
    cent, unless a custom-amount override is active

SEE ALSO:
  - split.go: maps State to installment amounts per policy
  - propagate.go: applies one unit's State across sibling units
*/
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICING POLICY - Closed sum type
// =============================================================================

// Policy names the formula that splits an agreed price into installments.
type Policy string

const (
	// PolicyStandard: first = agreedPrice * percentage, second = remainder.
	PolicyStandard Policy = "standard"

	// PolicyCustom: both installment amounts are entered verbatim;
	// agreedPrice plays no part in the split.
	PolicyCustom Policy = "custom"

	// PolicyFullVATDiscount: the whole agreed price is treated as
	// VAT-inclusive and converted to net once; both installments are net.
	PolicyFullVATDiscount Policy = "full-vat-discount"

	// PolicySplitVAT: only the first installment may be VAT-converted;
	// the second is computed against the VAT-inclusive equivalent.
	PolicySplitVAT Policy = "split-vat"
)

// Policies lists every valid policy, in stable order.
var Policies = []Policy{PolicyStandard, PolicyCustom, PolicyFullVATDiscount, PolicySplitVAT}

// Valid reports whether p is one of the known policies.
func (p Policy) Valid() bool {
	for _, known := range Policies {
		if p == known {
			return true
		}
	}
	return false
}

// =============================================================================
// PAYMENT METHOD
// =============================================================================

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodPOS         PaymentMethod = "pos"
	MethodTransfer    PaymentMethod = "transfer"
	MethodPaymentLink PaymentMethod = "payment-link"
	MethodAltLink     PaymentMethod = "alt-link"
)

// =============================================================================
// INSTALLMENT - One staged payment
// =============================================================================

// Installment is a single staged payment of the agreed price.
type Installment struct {
	Amount   decimal.Decimal
	Method   PaymentMethod
	Received bool

	// Date is set only when Received is true. Absence of a receipt
	// implies absence of a date; Normalize enforces this.
	Date *time.Time

	// ExcludeVAT marks this installment for net conversion under the
	// split-vat policy.
	ExcludeVAT bool

	// Percentage of the agreed price this installment represents, when
	// the policy derives amounts. Zero means unset.
	Percentage decimal.Decimal

	// UseCustomAmount overrides the percentage formula with Amount for
	// any non-custom policy.
	UseCustomAmount bool
}

// Normalize enforces the date-only-when-received invariant and clamps
// missing amounts to zero. In-progress forms routinely produce partial
// installments; those are normal states, not errors.
func (i Installment) Normalize() Installment {
	if !i.Received {
		i.Date = nil
	}
	return i
}

// =============================================================================
// PRICING STATE - One bookable unit (boat-leg)
// =============================================================================

// State is the full pricing picture for a single bookable unit.
type State struct {
	AgreedPrice   decimal.Decimal
	Type          Policy
	FirstPayment  Installment
	SecondPayment Installment
}

// TotalPaid sums the amounts of received installments.
func (s State) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	if s.FirstPayment.Received {
		total = total.Add(s.FirstPayment.Amount)
	}
	if s.SecondPayment.Received {
		total = total.Add(s.SecondPayment.Amount)
	}
	return total
}

// Normalize applies installment normalization to both payments.
func (s State) Normalize() State {
	s.FirstPayment = s.FirstPayment.Normalize()
	s.SecondPayment = s.SecondPayment.Normalize()
	return s
}

// Equivalent reports whether two states carry the same pricing inputs
// and derived amounts. Used by the recalculator's idempotence guard.
// Receipt facts participate: a receipt change is an observable change.
func (s State) Equivalent(o State) bool {
	return s.Type == o.Type &&
		s.AgreedPrice.Equal(o.AgreedPrice) &&
		s.FirstPayment.equivalent(o.FirstPayment) &&
		s.SecondPayment.equivalent(o.SecondPayment)
}

func (i Installment) equivalent(o Installment) bool {
	if !i.Amount.Equal(o.Amount) || !i.Percentage.Equal(o.Percentage) {
		return false
	}
	if i.Method != o.Method || i.Received != o.Received ||
		i.ExcludeVAT != o.ExcludeVAT || i.UseCustomAmount != o.UseCustomAmount {
		return false
	}
	if (i.Date == nil) != (o.Date == nil) {
		return false
	}
	return i.Date == nil || i.Date.Equal(*o.Date)
}
