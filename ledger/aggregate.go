/*
aggregate.go - Revenue and expense channel sums

PURPOSE:
  Sums the fixed income and expense channels of one ledger entry.
  Unknown or absent channel values default to zero. Negative values are
  accepted (corrections happen) but flagged, not silently clamped -
  whether a negative number is a correction or a data error is the
  caller's judgement to make.
*/
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculatedIncome sums every income channel of the entry.
func CalculatedIncome(e Entry) decimal.Decimal {
	total := decimal.Zero
	for _, ch := range IncomeChannels {
		total = total.Add(e.IncomeAmount(ch))
	}
	return total
}

// CalculatedExpenses sums every expense channel of the entry.
func CalculatedExpenses(e Entry) decimal.Decimal {
	total := decimal.Zero
	for _, ch := range ExpenseChannels {
		total = total.Add(e.ExpenseAmount(ch))
	}
	return total
}

// ChannelWarnings reports channels carrying negative values.
func ChannelWarnings(e Entry) []Warning {
	var warns []Warning
	for _, ch := range IncomeChannels {
		if v := e.IncomeAmount(ch); v.IsNegative() {
			warns = append(warns, Warning{
				Code:    WarnNegativeChannel,
				Channel: string(ch),
				Detail:  fmt.Sprintf("income channel holds %s", v),
			})
		}
	}
	for _, ch := range ExpenseChannels {
		if v := e.ExpenseAmount(ch); v.IsNegative() {
			warns = append(warns, Warning{
				Code:    WarnNegativeChannel,
				Channel: string(ch),
				Detail:  fmt.Sprintf("expense channel holds %s", v),
			})
		}
	}
	return warns
}
