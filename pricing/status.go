package pricing

// =============================================================================
// PAYMENT STATUS - Derived tri-state
// =============================================================================

// PaymentStatus is derived from the two installments' receipt flags.
// It has no history dependence: re-evaluated from current flags only,
// never stored as an independent fact.
type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "Completed"
	StatusPartial   PaymentStatus = "Partial"
	StatusNoPayment PaymentStatus = "No Payment"
)

// ResolveStatus maps the receipt flags to the tri-state status.
// Amounts play no part: a received zero-amount installment still counts.
func ResolveStatus(first, second Installment) PaymentStatus {
	switch {
	case first.Received && second.Received:
		return StatusCompleted
	case first.Received || second.Received:
		return StatusPartial
	default:
		return StatusNoPayment
	}
}

// Status is a convenience over ResolveStatus for a whole state.
func (s State) Status() PaymentStatus {
	return ResolveStatus(s.FirstPayment, s.SecondPayment)
}
