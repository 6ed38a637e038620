package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Validation rules, numbered for reporting.
const (
	RuleKnownKind     = 1
	RuleNonNegative   = 2
	RuleTwoDecimals   = 3
	RuleUniqueID      = 4
	RuleExpenseOnlyOn = 5
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        int
	TxnID       string
	Row         int // 1-based position in the input slice
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s, row %d]: %s", e.Rule, e.TxnID, e.Row, e.Description)
}

var hundred = decimal.NewFromInt(100)

// Validate checks records before they are aggregated:
//  1. kind is sale, purchase, receipt or payment
//  2. amount is not negative
//  3. amount has at most 2 decimal places
//  4. IDs are unique (empty IDs are allowed)
//  5. is_expense is only set on payments
func Validate(txns []model.Transaction) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)

	for i, txn := range txns {
		row := i + 1
		fail := func(rule int, format string, args ...any) {
			errs = append(errs, ValidationError{
				Rule:        rule,
				TxnID:       txn.ID,
				Row:         row,
				Description: fmt.Sprintf(format, args...),
			})
		}

		if !txn.Kind.Valid() {
			fail(RuleKnownKind, "unknown kind %q (want one of %v)", txn.Kind, model.Kinds)
		}

		if txn.Amount.IsNegative() {
			fail(RuleNonNegative, "amount %s is negative", txn.Amount)
		}

		scaled := txn.Amount.Mul(hundred)
		if !scaled.Equal(scaled.Truncate(0)) {
			fail(RuleTwoDecimals, "amount %s has more than 2 decimal places", txn.Amount)
		}

		if txn.ID != "" {
			if first, dup := seen[txn.ID]; dup {
				fail(RuleUniqueID, "duplicate ID, first seen at row %d", first)
			} else {
				seen[txn.ID] = row
			}
		}

		if txn.IsExpense && txn.Kind != model.KindPayment {
			fail(RuleExpenseOnlyOn, "is_expense set on a %s", txn.Kind)
		}
	}

	return errs
}
