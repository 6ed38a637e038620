package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which list a transaction record belongs to.
type Kind string

const (
	KindSale     Kind = "sale"
	KindPurchase Kind = "purchase"
	KindReceipt  Kind = "receipt"
	KindPayment  Kind = "payment"
)

// Kinds lists every transaction kind in statement order.
var Kinds = []Kind{KindSale, KindPurchase, KindReceipt, KindPayment}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// Transaction is a single sale, purchase, receipt or payment.
type Transaction struct {
	ID           string
	Kind         Kind
	Date         time.Time
	Amount       decimal.Decimal // totalAmount for sales/purchases, amount otherwise
	IsExpense    bool            // payments only: true = expense payment, false = vendor payment
	Counterparty string
	Reference    string
	Notes        string
}

// TransactionSet holds the four input lists. A nil slice is an empty list.
type TransactionSet struct {
	Sales     []Transaction
	Purchases []Transaction
	Receipts  []Transaction
	Payments  []Transaction
}

// Partition splits payments into vendor payments and expense payments.
// Every payment lands in exactly one of the two.
func (s TransactionSet) Partition() (vendor, expense []Transaction) {
	for _, p := range s.Payments {
		if p.IsExpense {
			expense = append(expense, p)
		} else {
			vendor = append(vendor, p)
		}
	}
	return vendor, expense
}

// Len returns the number of records across all four lists.
func (s TransactionSet) Len() int {
	return len(s.Sales) + len(s.Purchases) + len(s.Receipts) + len(s.Payments)
}

// Add appends t to the list matching its kind. Unknown kinds are ignored.
func (s *TransactionSet) Add(t Transaction) {
	switch t.Kind {
	case KindSale:
		s.Sales = append(s.Sales, t)
	case KindPurchase:
		s.Purchases = append(s.Purchases, t)
	case KindReceipt:
		s.Receipts = append(s.Receipts, t)
	case KindPayment:
		s.Payments = append(s.Payments, t)
	}
}

// All returns every record in kind order: sales, purchases, receipts, payments.
func (s TransactionSet) All() []Transaction {
	all := make([]Transaction, 0, s.Len())
	all = append(all, s.Sales...)
	all = append(all, s.Purchases...)
	all = append(all, s.Receipts...)
	all = append(all, s.Payments...)
	return all
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}
