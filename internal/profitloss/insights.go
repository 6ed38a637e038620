package profitloss

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/money"
)

// Insight thresholds. Margins are percentages, the others are fractions.
var (
	HighMarginThreshold   = decimal.NewFromInt(50)
	LowMarginThreshold    = decimal.NewFromInt(20)
	ExpenseShareThreshold = decimal.RequireFromString("0.8")
	CashFlowThreshold     = decimal.RequireFromString("0.5")
)

// Insights yields human-readable observations about a. The sequence is
// lazy; nothing is computed past the point where the caller stops.
func Insights(a Aggregate) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := a.Summary
		sales := a.Income.Amount(CategorySales)
		receipts := a.Income.Amount(CategoryReceipts)

		if s.ProfitMargin.GreaterThan(HighMarginThreshold) {
			if !yield(fmt.Sprintf("Excellent profit margin of %s on sales.", money.FormatPercentage(s.ProfitMargin, 2))) {
				return
			}
		} else if sales.IsPositive() && s.ProfitMargin.LessThan(LowMarginThreshold) {
			if !yield(fmt.Sprintf("Profit margin of %s is low; review purchase costs and pricing.", money.FormatPercentage(s.ProfitMargin, 2))) {
				return
			}
		}

		if s.TotalExpenses.GreaterThan(s.TotalIncome.Mul(ExpenseShareThreshold)) {
			msg := "High expense ratio: expenses recorded against no income."
			if s.TotalIncome.IsPositive() {
				msg = fmt.Sprintf("High expense ratio: expenses are %s of income.", money.FormatPercentage(s.ExpenseRatio, 2))
			}
			if !yield(msg) {
				return
			}
		}

		if receipts.GreaterThan(sales.Mul(CashFlowThreshold)) {
			msg := "Good cash flow: receipts recorded with no sales."
			if sales.IsPositive() {
				msg = fmt.Sprintf("Good cash flow: receipts are %s of sales.", money.FormatPercentage(money.Percent(receipts, sales), 2))
			}
			if !yield(msg) {
				return
			}
		}

		if s.NetProfit.IsNegative() {
			yield("The business is running at a net loss; expenses exceed income.")
		}
	}
}
