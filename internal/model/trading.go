package model

import "github.com/shopspring/decimal"

// TradingAccount is the trading section of a backend profit & loss payload.
// GrossProfit and GrossLoss are expected to be mutually exclusive, but
// nothing upstream enforces it.
type TradingAccount struct {
	OpeningStock decimal.Decimal
	Purchases    decimal.Decimal
	ClosingStock decimal.Decimal
	GrossProfit  decimal.Decimal
	GrossLoss    decimal.Decimal
	Sales        SalesFigure
}

// SalesFigure is the trading account's own view of sales.
type SalesFigure struct {
	Total     decimal.Decimal
	Breakdown SalesSplit
}

// SalesSplit divides sales between cash and credit.
type SalesSplit struct {
	Cash   decimal.Decimal
	Credit decimal.Decimal
	Count  int
}

// PaymentMethods breaks product sales down by how customers paid.
type PaymentMethods struct {
	Cash         decimal.Decimal `json:"cash"`
	Credit       decimal.Decimal `json:"credit"`
	UPI          decimal.Decimal `json:"upi"`
	BankTransfer decimal.Decimal `json:"bank_transfer"`
}

// IsZero reports whether every method is zero.
func (p PaymentMethods) IsZero() bool {
	return p.Cash.IsZero() && p.Credit.IsZero() && p.UPI.IsZero() && p.BankTransfer.IsZero()
}

// ProductSales is income.breakdown.productSales of a backend payload.
type ProductSales struct {
	Amount         decimal.Decimal
	PaymentMethods PaymentMethods
}

// TradingInput is everything the reconciler reads from a payload.
type TradingInput struct {
	Trading      TradingAccount
	ProductSales ProductSales
}
