// Package trading reconciles a backend trading account: both sides are
// totalled and checked against each other within a tolerance.
package trading

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// DefaultTolerance is the largest difference, in currency units, at which
// the two sides still count as balanced (exclusive).
var DefaultTolerance = decimal.RequireFromString("0.01")

// SalesSource is one place the sales total can come from.
type SalesSource struct {
	Name string
	Pick func(model.TradingInput) decimal.Decimal
}

// SalesSources are consulted in order; the first non-zero figure wins.
var SalesSources = []SalesSource{
	{Name: "trading.sales.total", Pick: func(in model.TradingInput) decimal.Decimal { return in.Trading.Sales.Total }},
	{Name: "income.breakdown.productSales.amount", Pick: func(in model.TradingInput) decimal.Decimal { return in.ProductSales.Amount }},
}

// Reconciliation is the outcome of totalling a trading account.
type Reconciliation struct {
	OpeningStock decimal.Decimal `json:"openingStock"`
	Purchases    decimal.Decimal `json:"purchases"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	SalesTotal   decimal.Decimal `json:"salesTotal"`
	SalesSource  string          `json:"salesSource,omitempty"`
	ClosingStock decimal.Decimal `json:"closingStock"`
	GrossLoss    decimal.Decimal `json:"grossLoss"`

	LHSTotal    decimal.Decimal `json:"lhsTotal"`
	RHSTotal    decimal.Decimal `json:"rhsTotal"`
	Balanced    bool            `json:"balanced"`
	Discrepancy decimal.Decimal `json:"discrepancy"`

	SalesSplit              model.SalesSplit     `json:"salesSplit"`
	PaymentMethods          model.PaymentMethods `json:"paymentMethods"`
	HasPaymentMethodDetails bool                 `json:"hasPaymentMethodDetails"`
}

// Reconcile totals both sides of in. A non-positive tolerance means
// DefaultTolerance. An unbalanced account is reported, never rejected.
func Reconcile(in model.TradingInput, tolerance decimal.Decimal) Reconciliation {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	t := in.Trading

	salesTotal, source := resolveSales(in)
	grossProfit := money.Max(t.GrossProfit, decimal.Zero)
	grossLoss := money.Max(t.GrossLoss, decimal.Zero)

	lhs := t.OpeningStock.Add(t.Purchases).Add(grossProfit)
	rhs := salesTotal.Add(t.ClosingStock).Add(grossLoss)
	diff := lhs.Sub(rhs).Abs()

	return Reconciliation{
		OpeningStock:            t.OpeningStock,
		Purchases:               t.Purchases,
		GrossProfit:             grossProfit,
		SalesTotal:              salesTotal,
		SalesSource:             source,
		ClosingStock:            t.ClosingStock,
		GrossLoss:               grossLoss,
		LHSTotal:                lhs,
		RHSTotal:                rhs,
		Balanced:                diff.LessThan(tolerance),
		Discrepancy:             diff,
		SalesSplit:              t.Sales.Breakdown,
		PaymentMethods:          in.ProductSales.PaymentMethods,
		HasPaymentMethodDetails: !in.ProductSales.PaymentMethods.IsZero(),
	}
}

func resolveSales(in model.TradingInput) (decimal.Decimal, string) {
	for _, src := range SalesSources {
		if v := src.Pick(in); !v.IsZero() {
			return v, src.Name
		}
	}
	return decimal.Zero, ""
}

// SplitGross turns a signed gross profit into the non-negative
// profit/loss pair a trading account carries.
func SplitGross(signed decimal.Decimal) (profit, loss decimal.Decimal) {
	if signed.IsNegative() {
		return decimal.Zero, signed.Neg()
	}
	return signed, decimal.Zero
}
