/*
summary.go - Batch totals over ledger reports

PURPOSE:
  Folds a set of per-entry reports (whichever buckets are currently
  selected for display) into aggregate totals. The fold is associative
  and commutative per entry, so recomputing over a filtered subset
  equals the corresponding sub-sum of the full-set computation - a
  property the summary tests pin down.
*/
package ledger

import "github.com/shopspring/decimal"

// Summary is the aggregate picture over a set of entries.
type Summary struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	OwnerPaid        decimal.Decimal
	OwnerOutstanding decimal.Decimal
	NetProfit        decimal.Decimal

	// ManualProfit totals the human-entered ProfitTotal figures,
	// kept apart from the computed NetProfit total.
	ManualProfit decimal.Decimal
}

// ZeroSummary is the fold identity.
func ZeroSummary() Summary {
	return Summary{
		Income:           decimal.Zero,
		Expenses:         decimal.Zero,
		OwnerPaid:        decimal.Zero,
		OwnerOutstanding: decimal.Zero,
		NetProfit:        decimal.Zero,
		ManualProfit:     decimal.Zero,
	}
}

// Add combines two summaries field by field.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Income:           s.Income.Add(o.Income),
		Expenses:         s.Expenses.Add(o.Expenses),
		OwnerPaid:        s.OwnerPaid.Add(o.OwnerPaid),
		OwnerOutstanding: s.OwnerOutstanding.Add(o.OwnerOutstanding),
		NetProfit:        s.NetProfit.Add(o.NetProfit),
		ManualProfit:     s.ManualProfit.Add(o.ManualProfit),
	}
}

// contribution is one report's summand.
func (s Summary) contribution(r Report) Summary {
	return s.Add(Summary{
		Income:           r.Income,
		Expenses:         r.Expenses,
		OwnerPaid:        r.Owner.PaidAmount,
		OwnerOutstanding: r.Owner.OutstandingAmount,
		NetProfit:        r.NetProfit,
		ManualProfit:     r.Entry.ProfitTotal,
	})
}

// Accumulate folds reports into a summary. Order-independent.
func Accumulate(reports []Report) Summary {
	total := ZeroSummary()
	for _, r := range reports {
		total = total.contribution(r)
	}
	return total
}
