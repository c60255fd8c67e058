/*
warnings.go - Reconciliation warnings for pricing calculations

PURPOSE:
  The engine favors total functions over thrown errors: a half-filled
  form is a normal state. When a computation notices something a human
  should look at (installments exceeding the agreed price, a negative
  second payment from an oversized percentage), it attaches a Warning to
  the result instead of failing. Callers decide whether to block, flag,
  or ignore.

SEE ALSO:
  - split.go: produces these warnings
  - ledger package: has its own Warning type for channel-level findings
*/
package pricing

import "fmt"

type WarningCode string

const (
	// WarnSplitExceedsAgreed: first + second exceed the agreed price by
	// more than the one-cent rounding tolerance (non-custom policies).
	WarnSplitExceedsAgreed WarningCode = "split_exceeds_agreed"

	// WarnNegativeInstallment: a derived installment came out negative,
	// typically a percentage above 100 or a custom first payment larger
	// than the agreed price.
	WarnNegativeInstallment WarningCode = "negative_installment"

	// WarnUnknownPolicy: the policy value is not one of the closed set.
	// The split falls back to verbatim amounts (custom behavior).
	WarnUnknownPolicy WarningCode = "unknown_policy"
)

// Warning is a non-fatal finding attached to a computation result.
type Warning struct {
	Code   WarningCode
	Field  string
	Detail string
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", w.Code, w.Field, w.Detail)
}
