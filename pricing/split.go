/*
split.go - Payment split calculator

PURPOSE:
  Maps a pricing State to its two installment amounts. This is the
  formula core of the engine: each policy has one payload shape and one
  derivation, matched exhaustively so a new policy cannot be added
  without the compiler pointing here.

ALGORITHM (by policy):
  custom:            first and second are taken verbatim; agreedPrice
                     is ignored entirely.
  standard:          first = agreed * pct/100 (or the custom amount),
                     second = agreed - first.
  full-vat-discount: the agreed price is VAT-inclusive; both figures
                     are net. first = excludeVAT(agreed * pct/100),
                     second = excludeVAT(agreed) - first.
  split-vat:         first = agreed * pct/100, optionally converted to
                     net; second subtracts the VAT-inclusive equivalent
                     of the first from the (gross) agreed price.

CUSTOM-AMOUNT OVERRIDE:
  For any non-custom policy with firstPayment.useCustomAmount set, the
  second installment is recomputed as max(0, agreed - first) after the
  policy-specific first is known.

ROUNDING:
  Outputs are rounded to two decimal places at the point of storage,
  here. Intermediate math keeps full precision.

SEE ALSO:
  - money.go: VAT primitives and Round2
  - recalc.go: debounced re-derivation with the idempotence guard
*/
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Split is a derived pair of installment amounts, rounded for storage.
type Split struct {
	First  decimal.Decimal
	Second decimal.Decimal
}

// Equal compares both amounts exactly.
func (s Split) Equal(o Split) bool {
	return s.First.Equal(o.First) && s.Second.Equal(o.Second)
}

// SplitResult carries the derived pair plus any reconciliation warnings.
type SplitResult struct {
	Split
	Warnings []Warning
}

// CalculateSplit derives the installment amounts for a pricing state.
// Total function: malformed states degrade to zero amounts plus
// warnings, never an error.
func CalculateSplit(s State) SplitResult {
	var (
		first  decimal.Decimal
		second decimal.Decimal
		warns  []Warning
	)

	agreed := s.AgreedPrice
	pct := s.FirstPayment.Percentage

	switch s.Type {
	case PolicyCustom:
		// Verbatim amounts; no derivation from the agreed price.
		first = s.FirstPayment.Amount
		second = s.SecondPayment.Amount

	case PolicyStandard:
		if s.FirstPayment.UseCustomAmount {
			first = s.FirstPayment.Amount
		} else {
			first = percent(agreed, pct)
		}
		second = agreed.Sub(first)

	case PolicyFullVATDiscount:
		// The whole agreed price is VAT-inclusive and converted once.
		first = ExcludeVAT(percent(agreed, pct))
		second = ExcludeVAT(agreed).Sub(first)

	case PolicySplitVAT:
		raw := percent(agreed, pct)
		effective := raw
		if s.FirstPayment.ExcludeVAT {
			first = ExcludeVAT(raw)
			// Subtraction happens in VAT-inclusive terms, so the net
			// first payment is converted back for that purpose only.
			effective = IncludeVAT(first)
		} else {
			first = raw
		}
		second = agreed.Sub(effective)

	default:
		// Unknown policies fall back to verbatim amounts so persisted
		// records with a bad policy value still render something.
		warns = append(warns, Warning{
			Code:   WarnUnknownPolicy,
			Field:  "pricingType",
			Detail: fmt.Sprintf("unrecognized policy %q", s.Type),
		})
		first = s.FirstPayment.Amount
		second = s.SecondPayment.Amount
	}

	// Custom-amount override: once the policy-specific first is known,
	// the second is the non-negative remainder.
	if s.Type != PolicyCustom && s.FirstPayment.UseCustomAmount {
		second = decimal.Max(decimal.Zero, agreed.Sub(first))
	}

	first = Round2(first)
	second = Round2(second)

	warns = append(warns, splitWarnings(s, first, second)...)

	return SplitResult{Split: Split{First: first, Second: second}, Warnings: warns}
}

// splitWarnings checks the derived pair against the pricing invariants.
func splitWarnings(s State, first, second decimal.Decimal) []Warning {
	var warns []Warning

	if first.IsNegative() {
		warns = append(warns, Warning{
			Code:   WarnNegativeInstallment,
			Field:  "firstPayment.amount",
			Detail: fmt.Sprintf("derived first payment %s is negative", first),
		})
	}
	if second.IsNegative() {
		warns = append(warns, Warning{
			Code:   WarnNegativeInstallment,
			Field:  "secondPayment.amount",
			Detail: fmt.Sprintf("derived second payment %s is negative", second),
		})
	}

	// Conservation check only applies when the split is derived from
	// the agreed price; custom amounts answer to no total. The
	// full-vat-discount pair is net while the agreed price is gross,
	// so that comparison runs against the net agreed price.
	if s.Type == PolicyCustom || !s.Type.Valid() {
		return warns
	}
	base := s.AgreedPrice
	if s.Type == PolicyFullVATDiscount {
		base = ExcludeVAT(s.AgreedPrice)
	}
	excess := first.Add(second).Sub(base)
	if excess.GreaterThan(tolerance) {
		warns = append(warns, Warning{
			Code:   WarnSplitExceedsAgreed,
			Detail: fmt.Sprintf("installments exceed agreed price by %s", Round2(excess)),
		})
	}
	return warns
}

// Rederive recomputes the split for a state and stores the derived
// amounts back onto the installments. The changed flag is false when
// the newly computed pair equals the previously stored pair, so callers
// can skip redundant downstream notifications.
func Rederive(s State) (State, SplitResult, bool) {
	result := CalculateSplit(s)

	previous := Split{First: s.FirstPayment.Amount, Second: s.SecondPayment.Amount}
	if result.Split.Equal(previous) {
		return s, result, false
	}

	s.FirstPayment.Amount = result.First
	s.SecondPayment.Amount = result.Second
	return s, result, true
}
