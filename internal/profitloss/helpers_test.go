package profitloss

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(amount string) model.Transaction {
	return model.Transaction{Kind: model.KindSale, Amount: dec(amount)}
}

func purchase(amount string) model.Transaction {
	return model.Transaction{Kind: model.KindPurchase, Amount: dec(amount)}
}

func receipt(amount string) model.Transaction {
	return model.Transaction{Kind: model.KindReceipt, Amount: dec(amount)}
}

func payment(amount string, isExpense bool) model.Transaction {
	return model.Transaction{Kind: model.KindPayment, Amount: dec(amount), IsExpense: isExpense}
}

func exampleSet() model.TransactionSet {
	return model.TransactionSet{
		Sales:     []model.Transaction{sale("1000")},
		Purchases: []model.Transaction{purchase("400")},
		Receipts:  []model.Transaction{receipt("200")},
		Payments:  []model.Transaction{payment("100", false), payment("50", true)},
	}
}
