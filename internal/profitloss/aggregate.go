// Package profitloss turns raw transaction lists into a two-sided profit &
// loss statement and derives status, insights, ratios and growth from it.
//
// Every function here is pure: same input, same output, no errors.
package profitloss

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// Category keys a breakdown line.
type Category string

const (
	CategorySales           Category = "sales"
	CategoryReceipts        Category = "receipts"
	CategoryPurchases       Category = "purchases"
	CategoryVendorPayments  Category = "vendorPayments"
	CategoryExpensePayments Category = "expensePayments"
)

// IncomeCategories and ExpenseCategories list breakdown keys in display order.
var (
	IncomeCategories  = []Category{CategorySales, CategoryReceipts}
	ExpenseCategories = []Category{CategoryPurchases, CategoryVendorPayments, CategoryExpensePayments}
)

var labels = map[Category]string{
	CategorySales:           "Sales",
	CategoryReceipts:        "Receipts",
	CategoryPurchases:       "Purchases",
	CategoryVendorPayments:  "Vendor Payments",
	CategoryExpensePayments: "Expense Payments",
}

// BreakdownItem aggregates one category.
type BreakdownItem struct {
	Amount decimal.Decimal `json:"amount"`
	Label  string          `json:"label"`
	Count  int             `json:"count"`
}

// Section is one side of the statement. Total is the sum of the breakdown amounts.
type Section struct {
	Total     decimal.Decimal            `json:"total"`
	Breakdown map[Category]BreakdownItem `json:"breakdown"`
}

// Amount returns the breakdown amount for c, or zero.
func (s Section) Amount(c Category) decimal.Decimal {
	return s.Breakdown[c].Amount
}

// Summary holds the headline figures. GrossProfit is signed: a negative
// value is a gross loss.
type Summary struct {
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
	NetMargin     decimal.Decimal `json:"netMargin"`
	ExpenseRatio  decimal.Decimal `json:"expenseRatio"`
	IsProfitable  bool            `json:"isProfitable"`
}

// QuickStats are per-record averages.
type QuickStats struct {
	TotalTransactions int             `json:"totalTransactions"`
	AverageSale       decimal.Decimal `json:"averageSale"`
	AverageExpense    decimal.Decimal `json:"averageExpense"`
}

// Aggregate is the computed statement.
type Aggregate struct {
	Income     Section    `json:"income"`
	Expenses   Section    `json:"expenses"`
	Summary    Summary    `json:"summary"`
	QuickStats QuickStats `json:"quickStats"`
}

// Calculate builds the statement for set. Payments are split by IsExpense
// into vendor and expense payments regardless of how the caller grouped them.
func Calculate(set model.TransactionSet) Aggregate {
	vendor, expense := set.Partition()

	sales := sumItem(CategorySales, set.Sales)
	receipts := sumItem(CategoryReceipts, set.Receipts)
	purchases := sumItem(CategoryPurchases, set.Purchases)
	vendorPaid := sumItem(CategoryVendorPayments, vendor)
	expensePaid := sumItem(CategoryExpensePayments, expense)

	income := newSection(map[Category]BreakdownItem{
		CategorySales:    sales,
		CategoryReceipts: receipts,
	})
	expenses := newSection(map[Category]BreakdownItem{
		CategoryPurchases:       purchases,
		CategoryVendorPayments:  vendorPaid,
		CategoryExpensePayments: expensePaid,
	})

	grossProfit := sales.Amount.Sub(purchases.Amount)
	netProfit := income.Total.Sub(expenses.Total)

	expenseCount := purchases.Count + vendorPaid.Count + expensePaid.Count

	return Aggregate{
		Income:   income,
		Expenses: expenses,
		Summary: Summary{
			GrossProfit:   grossProfit,
			NetProfit:     netProfit,
			TotalIncome:   income.Total,
			TotalExpenses: expenses.Total,
			ProfitMargin:  money.Percent(grossProfit, sales.Amount),
			NetMargin:     money.Percent(netProfit, income.Total),
			ExpenseRatio:  money.Percent(expenses.Total, income.Total),
			IsProfitable:  netProfit.IsPositive(),
		},
		QuickStats: QuickStats{
			TotalTransactions: set.Len(),
			AverageSale:       average(sales.Amount, sales.Count),
			AverageExpense:    average(expenses.Total, expenseCount),
		},
	}
}

func sumItem(c Category, txns []model.Transaction) BreakdownItem {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return BreakdownItem{Amount: total, Label: labels[c], Count: len(txns)}
}

func newSection(items map[Category]BreakdownItem) Section {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return Section{Total: total, Breakdown: items}
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
