/*
promote.go - Pending bookings and promotion into ledger entries

PURPOSE:
  A booking with no corresponding ledger entry is a pending booking for
  reconciliation purposes. Promotion drafts a ledger entry for it:
  income channels prefilled from received installments (by payment
  method), boat cost channels prefilled from the owner payout legs.
  The draft is handed back to the caller; persisting it is the
  caller's responsibility.
*/
package booking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/justboats/charter-engine/ledger"
	"github.com/justboats/charter-engine/pricing"
)

// Pending returns the bookings that have no ledger entry referencing
// them, in input order.
func Pending(bookings []Booking, entries []ledger.Entry) []Booking {
	covered := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.BookingID != "" {
			covered[e.BookingID] = true
		}
	}

	var pending []Booking
	for _, b := range bookings {
		if !covered[b.ID] {
			pending = append(pending, b)
		}
	}
	return pending
}

// incomeChannelFor maps a payment method to the income channel its
// money lands in. Link methods share one channel.
func incomeChannelFor(method pricing.PaymentMethod) ledger.IncomeChannel {
	switch method {
	case pricing.MethodCash:
		return ledger.IncomeAgencyCash
	case pricing.MethodPOS:
		return ledger.IncomeAgencyPOS
	case pricing.MethodTransfer:
		return ledger.IncomeBankTransfer
	default:
		// payment-link, alt-link, and anything unrecognized.
		return ledger.IncomePaymentLink
	}
}

// PromoteToEntry drafts a ledger entry for a pending booking. A fresh
// entry ID is minted; the booking itself is untouched.
func PromoteToEntry(b Booking) ledger.Entry {
	income := make(map[ledger.IncomeChannel]decimal.Decimal)
	addIncome := func(ch ledger.IncomeChannel, amount decimal.Decimal) {
		income[ch] = income[ch].Add(amount)
	}

	for _, u := range b.Units {
		if u.Pricing.FirstPayment.Received {
			addIncome(incomeChannelFor(u.Pricing.FirstPayment.Method), u.Pricing.FirstPayment.Amount)
		}
		if u.Pricing.SecondPayment.Received {
			addIncome(incomeChannelFor(u.Pricing.SecondPayment.Method), u.Pricing.SecondPayment.Amount)
		}
	}

	expenses := make(map[ledger.ExpenseChannel]decimal.Decimal)
	legToChannel := map[ledger.LegKey]ledger.ExpenseChannel{
		ledger.LegFirst:    ledger.ExpenseBoatFirst,
		ledger.LegSecond:   ledger.ExpenseBoatSecond,
		ledger.LegTransfer: ledger.ExpenseBoatTransfer,
	}
	for key, leg := range b.OwnerLegs {
		ch, ok := legToChannel[key]
		if !ok || !leg.Amount.IsPositive() {
			continue
		}
		expenses[ch] = leg.Amount
	}

	return ledger.Entry{
		ID:          ledger.EntryID(uuid.NewString()),
		Date:        b.Date,
		BookingID:   b.ID,
		Income:      income,
		Expenses:    expenses,
		ProfitTotal: decimal.Zero,
		Description: b.ClientName,
	}
}
