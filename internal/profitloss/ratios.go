package profitloss

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/money"
)

// FinancialRatios are percentages of total income.
type FinancialRatios struct {
	OperatingMargin      decimal.Decimal `json:"operatingMargin"`
	ReturnOnRevenue      decimal.Decimal `json:"returnOnRevenue"`
	ExpenseToIncomeRatio decimal.Decimal `json:"expenseToIncomeRatio"`
}

// Ratios computes a's ratios against income. All are zero when income is not positive.
func Ratios(a Aggregate) FinancialRatios {
	income := a.Income.Total
	return FinancialRatios{
		OperatingMargin:      money.Percent(a.Summary.GrossProfit, income),
		ReturnOnRevenue:      money.Percent(a.Summary.NetProfit, income),
		ExpenseToIncomeRatio: money.Percent(a.Expenses.Total, income),
	}
}
