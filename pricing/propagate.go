/*
propagate.go - Multi-unit price propagation

PURPOSE:
  Multi-boat bookings share one pricing configuration: the user sets up
  one unit and applies it to the siblings. Propagation copies the
  CONFIGURATION (policy, agreed price, percentages, methods, VAT flags)
  while each target unit keeps its own receipt FACTS (received flags and
  dates). A propagated price must never mark an untouched unit's payment
  as received, and must never erase a unit's own receipt history.

CONTRACT:
  Copied from source:   Type, AgreedPrice, installment Amount, Method,
                        ExcludeVAT, Percentage, UseCustomAmount
  Preserved on target:  installment Received, Date

  The copied/preserved field sets are spelled out in applyInstallment so
  the contract is visible in one place rather than implied by copy order.
*/
package pricing

// Propagate applies the source unit's pricing configuration to every
// target state and re-derives each target's split. Targets are returned
// as new values; inputs are not mutated.
func Propagate(source State, targets []State) []State {
	out := make([]State, len(targets))
	for i, target := range targets {
		applied := State{
			AgreedPrice:   source.AgreedPrice,
			Type:          source.Type,
			FirstPayment:  applyInstallment(source.FirstPayment, target.FirstPayment),
			SecondPayment: applyInstallment(source.SecondPayment, target.SecondPayment),
		}
		// Re-derive so each unit's stored amounts match the applied
		// configuration. Receipt facts do not feed the split, so this
		// cannot disturb them.
		applied, _, _ = Rederive(applied)
		out[i] = applied.Normalize()
	}
	return out
}

// applyInstallment builds the target installment for a propagated price.
// This is the explicit copied-vs-preserved contract for propagation.
func applyInstallment(source, target Installment) Installment {
	return Installment{
		// Configuration: copied from the source unit.
		Amount:          source.Amount,
		Method:          source.Method,
		ExcludeVAT:      source.ExcludeVAT,
		Percentage:      source.Percentage,
		UseCustomAmount: source.UseCustomAmount,

		// Receipt facts: preserved from the target unit.
		Received: target.Received,
		Date:     target.Date,
	}
}
