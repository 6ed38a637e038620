package profitloss

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestCalculate_Example(t *testing.T) {
	a := Calculate(exampleSet())

	assert.True(t, a.Summary.TotalIncome.Equal(dec("1200")), "total income %s", a.Summary.TotalIncome)
	assert.True(t, a.Summary.TotalExpenses.Equal(dec("550")), "total expenses %s", a.Summary.TotalExpenses)
	assert.True(t, a.Summary.NetProfit.Equal(dec("650")), "net profit %s", a.Summary.NetProfit)
	assert.True(t, a.Summary.GrossProfit.Equal(dec("600")))
	assert.True(t, a.Summary.ProfitMargin.Equal(dec("60")), "profit margin %s", a.Summary.ProfitMargin)
	assert.True(t, a.Summary.NetMargin.Equal(dec("54.17")), "net margin %s", a.Summary.NetMargin)
	assert.True(t, a.Summary.ExpenseRatio.Equal(dec("45.83")), "expense ratio %s", a.Summary.ExpenseRatio)
	assert.True(t, a.Summary.IsProfitable)

	assert.Equal(t, 5, a.QuickStats.TotalTransactions)
	assert.True(t, a.QuickStats.AverageSale.Equal(dec("1000")))
	assert.True(t, a.QuickStats.AverageExpense.Equal(dec("550").Div(dec("3"))))
}

func TestCalculate_Empty(t *testing.T) {
	a := Calculate(model.TransactionSet{})

	assert.True(t, a.Summary.TotalIncome.IsZero())
	assert.True(t, a.Summary.TotalExpenses.IsZero())
	assert.True(t, a.Summary.NetProfit.IsZero())
	assert.True(t, a.Summary.GrossProfit.IsZero())
	assert.True(t, a.Summary.ProfitMargin.IsZero())
	assert.True(t, a.Summary.NetMargin.IsZero())
	assert.True(t, a.Summary.ExpenseRatio.IsZero())
	assert.False(t, a.Summary.IsProfitable)
	assert.Equal(t, 0, a.QuickStats.TotalTransactions)
	assert.True(t, a.QuickStats.AverageSale.IsZero())
	assert.True(t, a.QuickStats.AverageExpense.IsZero())

	for _, c := range IncomeCategories {
		require.Contains(t, a.Income.Breakdown, c)
		assert.Equal(t, 0, a.Income.Breakdown[c].Count)
	}
	for _, c := range ExpenseCategories {
		require.Contains(t, a.Expenses.Breakdown, c)
	}
}

func TestCalculate_PaymentPartition(t *testing.T) {
	set := model.TransactionSet{
		Payments: []model.Transaction{
			payment("10", true),
			payment("20", false),
			payment("30", true),
			payment("40", false),
		},
	}
	a := Calculate(set)

	vendor := a.Expenses.Breakdown[CategoryVendorPayments]
	expense := a.Expenses.Breakdown[CategoryExpensePayments]
	assert.True(t, vendor.Amount.Equal(dec("60")))
	assert.Equal(t, 2, vendor.Count)
	assert.True(t, expense.Amount.Equal(dec("40")))
	assert.Equal(t, 2, expense.Count)
	assert.True(t, a.Expenses.Total.Equal(dec("100")))
}

func TestCalculate_SectionTotalsMatchBreakdown(t *testing.T) {
	a := Calculate(model.TransactionSet{
		Sales:     []model.Transaction{sale("120.50"), sale("79.50")},
		Purchases: []model.Transaction{purchase("33.33"), purchase("66.67")},
		Receipts:  []model.Transaction{receipt("10")},
		Payments:  []model.Transaction{payment("5.25", true), payment("4.75", false)},
	})

	for _, s := range []Section{a.Income, a.Expenses} {
		sum := decimal.Zero
		for _, item := range s.Breakdown {
			sum = sum.Add(item.Amount)
		}
		assert.True(t, s.Total.Equal(sum), "total %s != breakdown sum %s", s.Total, sum)
	}
	assert.True(t, a.Summary.NetProfit.Equal(a.Summary.TotalIncome.Sub(a.Summary.TotalExpenses)))
}

func TestCalculate_GrossLossIsNegativeGrossProfit(t *testing.T) {
	a := Calculate(model.TransactionSet{
		Sales:     []model.Transaction{sale("300")},
		Purchases: []model.Transaction{purchase("500")},
	})

	assert.True(t, a.Summary.GrossProfit.Equal(dec("-200")))
	assert.True(t, a.Summary.ProfitMargin.Equal(dec("-66.67")))
	assert.False(t, a.Summary.IsProfitable)
}

func TestCalculate_NoSalesButReceipts(t *testing.T) {
	a := Calculate(model.TransactionSet{
		Receipts: []model.Transaction{receipt("100")},
		Payments: []model.Transaction{payment("25", true)},
	})

	assert.True(t, a.Summary.ProfitMargin.IsZero(), "no sales means zero profit margin")
	assert.True(t, a.Summary.NetMargin.Equal(dec("75")))
	assert.True(t, a.Summary.ExpenseRatio.Equal(dec("25")))
	assert.True(t, a.QuickStats.AverageSale.IsZero())
}

func TestCalculate_Idempotent(t *testing.T) {
	set := exampleSet()
	first := Calculate(set)
	second := Calculate(set)
	assert.Equal(t, first, second)
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	set := exampleSet()
	before := len(set.Payments)
	Calculate(set)
	assert.Len(t, set.Payments, before)
	assert.False(t, set.Payments[0].IsExpense)
}
