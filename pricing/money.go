/*
Package pricing implements the pricing and staged-payment engine for
charter bookings.

PURPOSE:
  Splits an agreed charter price into staged installments under a set of
  pricing policies (including VAT inclusion/exclusion math), derives a
  payment status from partial payment facts, and propagates one unit's
  pricing across sibling units in multi-boat bookings.

KEY CONCEPTS IN THIS FILE (money.go):
  - VAT conversion: ExcludeVAT / IncludeVAT at a fixed 21% rate
  - Round2: the ONLY rounding point, applied at storage boundaries

DESIGN PRINCIPLES:
  1. Precision: uses decimal.Decimal to avoid floating-point errors
  2. Totality: every calculation is a total function; malformed input
     degrades to zero amounts plus warnings, never errors
  3. No internal rounding: intermediate math keeps full precision,
     only stored/presented figures pass through Round2

SEE ALSO:
  - split.go: Payment split calculator using these primitives
  - types.go: Pricing policies and installment types
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// VATRate is the fixed value-added-tax rate applied to all conversions.
const VATRate = 0.21

// vatFactor is 1 + VATRate, the gross/net conversion factor.
var vatFactor = decimal.NewFromFloat(1 + VATRate)

// ExcludeVAT converts a VAT-inclusive (gross) amount to its net value.
// Pure and total: no rounding, no error conditions.
func ExcludeVAT(gross decimal.Decimal) decimal.Decimal {
	return gross.Div(vatFactor)
}

// IncludeVAT converts a net amount to its VAT-inclusive (gross) value.
func IncludeVAT(net decimal.Decimal) decimal.Decimal {
	return net.Mul(vatFactor)
}

// Round2 rounds to two decimal places. Callers apply it only when an
// amount is stored or presented, never mid-calculation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// tolerance is the rounding tolerance for reconciliation checks:
// installment pairs are allowed to drift from the agreed price by at
// most one cent before a warning is raised.
var tolerance = decimal.NewFromFloat(0.01)

// percent divides by 100 without losing precision.
func percent(of, pct decimal.Decimal) decimal.Decimal {
	return of.Mul(pct).Div(decimal.NewFromInt(100))
}
