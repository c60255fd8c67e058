/*
profit.go - Realized and projected profit per entry

PURPOSE:
  Combines the channel aggregator and the owner reconciler into the two
  profit figures the back office cares about:

    net (realized):  income - expenses - owner payouts actually made
    projected:       income - expenses - owner payouts eventually due

  Both are computed figures and are distinct from the entry's manually
  recorded ProfitTotal, which is never overwritten - the two are kept
  side by side for reconciliation and audit.
*/
package ledger

import "github.com/shopspring/decimal"

// Report is the full derived picture for one entry: aggregates, owner
// reconciliation, both profit figures, and any warnings found on the way.
type Report struct {
	Entry Entry

	Income   decimal.Decimal
	Expenses decimal.Decimal
	Owner    OwnerSummary

	// NetProfit is realized: income - expenses - owner paid.
	NetProfit decimal.Decimal

	// ProjectedProfit assumes all owner payouts eventually happen:
	// income - expenses - owner total due.
	ProjectedProfit decimal.Decimal

	Warnings []Warning
}

// NetProfit computes realized profit from the aggregate components.
func NetProfit(income, expenses decimal.Decimal, owner OwnerSummary) decimal.Decimal {
	return income.Sub(expenses).Sub(owner.PaidAmount)
}

// ProjectedProfit computes profit after all payouts eventually due.
func ProjectedProfit(income, expenses decimal.Decimal, owner OwnerSummary) decimal.Decimal {
	return income.Sub(expenses).Sub(owner.TotalDue)
}

// BuildReport derives everything for one entry. The owner summary comes
// from the entry's booking; entries without a booking pass a zero
// OwnerSummary. Total function: a malformed entry degrades its own
// figures and carries warnings, it never fails the batch.
func BuildReport(e Entry, owner OwnerSummary) Report {
	income := CalculatedIncome(e)
	expenses := CalculatedExpenses(e)

	warns := ChannelWarnings(e)
	if e.Date == nil {
		warns = append(warns, Warning{
			Code:   WarnUnparsedDate,
			Detail: "entry has no parseable date; bucketed as current",
		})
	}

	return Report{
		Entry:           e,
		Income:          income,
		Expenses:        expenses,
		Owner:           owner,
		NetProfit:       NetProfit(income, expenses, owner),
		ProjectedProfit: ProjectedProfit(income, expenses, owner),
		Warnings:        warns,
	}
}
