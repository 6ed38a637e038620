// Package payload decodes JSON payloads into the typed records the
// statement and reconciliation code works on. Numbers that are missing,
// null or malformed become zero; only unparseable JSON is an error.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
)

// ErrParse is returned when a payload is not valid JSON of the expected shape.
var ErrParse = errors.New("malformed payload")

func decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return doc, nil
}

// DecodeTransactions reads {"sales":[...],"purchases":[...],"receipts":[...],"payments":[...]}.
// Absent lists are empty. Sales and purchases carry totalAmount, receipts
// and payments carry amount.
func DecodeTransactions(r io.Reader) (model.TransactionSet, error) {
	doc, err := decode(r)
	if err != nil {
		return model.TransactionSet{}, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return model.TransactionSet{}, fmt.Errorf("%w: expected an object, got %T", ErrParse, doc)
	}

	return model.TransactionSet{
		Sales:     records(obj["sales"], model.KindSale, "totalAmount"),
		Purchases: records(obj["purchases"], model.KindPurchase, "totalAmount"),
		Receipts:  records(obj["receipts"], model.KindReceipt, "amount"),
		Payments:  records(obj["payments"], model.KindPayment, "amount"),
	}, nil
}

func records(v any, kind model.Kind, amountKey string) []model.Transaction {
	list, _ := v.([]any)
	txns := make([]model.Transaction, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		txns = append(txns, model.Transaction{
			ID:           toString(rec["id"]),
			Kind:         kind,
			Date:         toDate(rec["date"]),
			Amount:       toDecimal(rec[amountKey]),
			IsExpense:    kind == model.KindPayment && toBool(rec["isExpense"]),
			Counterparty: toString(rec["counterparty"]),
			Reference:    toString(rec["reference"]),
			Notes:        toString(rec["notes"]),
		})
	}
	return txns
}

// Field is a named location in a trading payload.
type Field struct {
	Name string
	Path string
}

// Trading payload fields, one JSONPath each.
var (
	FieldOpeningStock = Field{"openingStock", "$.trading.openingStock"}
	FieldPurchases    = Field{"purchases", "$.trading.purchases"}
	FieldClosingStock = Field{"closingStock", "$.trading.closingStock"}
	FieldGrossProfit  = Field{"grossProfit", "$.trading.grossProfit"}
	FieldGrossLoss    = Field{"grossLoss", "$.trading.grossLoss"}
	FieldSalesTotal   = Field{"sales.total", "$.trading.sales.total"}
	FieldSalesCash    = Field{"sales.cash", "$.trading.sales.breakdown.cash"}
	FieldSalesCredit  = Field{"sales.credit", "$.trading.sales.breakdown.credit"}
	FieldSalesCount   = Field{"sales.count", "$.trading.sales.breakdown.count"}

	FieldProductSales = Field{"productSales.amount", "$.income.breakdown.productSales.amount"}
	FieldPayCash      = Field{"paymentMethods.cash", "$.income.breakdown.productSales.paymentMethods.cash"}
	FieldPayCredit    = Field{"paymentMethods.credit", "$.income.breakdown.productSales.paymentMethods.credit"}
	FieldPayUPI       = Field{"paymentMethods.upi", "$.income.breakdown.productSales.paymentMethods.upi"}
	FieldPayBank      = Field{"paymentMethods.bank_transfer", "$.income.breakdown.productSales.paymentMethods.bank_transfer"}
)

// Lookup returns the raw value at f in doc, or nil when the path does not exist.
func Lookup(doc any, f Field) any {
	v, err := jsonpath.Get(f.Path, doc)
	if err != nil {
		return nil
	}
	// jsonpath may wrap a single match in a list.
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

// Amount returns the money value at f, or zero.
func Amount(doc any, f Field) decimal.Decimal {
	return toDecimal(Lookup(doc, f))
}

// DecodeTrading reads a backend profit & loss payload carrying a trading
// object and an income.breakdown.productSales entry.
func DecodeTrading(r io.Reader) (model.TradingInput, error) {
	doc, err := decode(r)
	if err != nil {
		return model.TradingInput{}, err
	}
	if _, ok := doc.(map[string]any); !ok {
		return model.TradingInput{}, fmt.Errorf("%w: expected an object, got %T", ErrParse, doc)
	}

	return model.TradingInput{
		Trading: model.TradingAccount{
			OpeningStock: Amount(doc, FieldOpeningStock),
			Purchases:    Amount(doc, FieldPurchases),
			ClosingStock: Amount(doc, FieldClosingStock),
			GrossProfit:  Amount(doc, FieldGrossProfit),
			GrossLoss:    Amount(doc, FieldGrossLoss),
			Sales: model.SalesFigure{
				Total: Amount(doc, FieldSalesTotal),
				Breakdown: model.SalesSplit{
					Cash:   Amount(doc, FieldSalesCash),
					Credit: Amount(doc, FieldSalesCredit),
					Count:  toInt(Lookup(doc, FieldSalesCount)),
				},
			},
		},
		ProductSales: model.ProductSales{
			Amount: Amount(doc, FieldProductSales),
			PaymentMethods: model.PaymentMethods{
				Cash:         Amount(doc, FieldPayCash),
				Credit:       Amount(doc, FieldPayCredit),
				UPI:          Amount(doc, FieldPayUPI),
				BankTransfer: Amount(doc, FieldPayBank),
			},
		},
	}, nil
}

// DecodeAggregate reads a statement previously produced by profitloss.Calculate.
func DecodeAggregate(r io.Reader) (*profitloss.Aggregate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	var a profitloss.Aggregate
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	boundAggregate(&a)
	return &a, nil
}

// boundAggregate zeroes every figure outside money.Bounded.
func boundAggregate(a *profitloss.Aggregate) {
	for _, sec := range []*profitloss.Section{&a.Income, &a.Expenses} {
		sec.Total = money.Bounded(sec.Total)
		for c, item := range sec.Breakdown {
			item.Amount = money.Bounded(item.Amount)
			sec.Breakdown[c] = item
		}
	}

	s := &a.Summary
	for _, d := range []*decimal.Decimal{
		&s.GrossProfit, &s.NetProfit, &s.TotalIncome, &s.TotalExpenses,
		&s.ProfitMargin, &s.NetMargin, &s.ExpenseRatio,
		&a.QuickStats.AverageSale, &a.QuickStats.AverageExpense,
	} {
		*d = money.Bounded(*d)
	}
}
