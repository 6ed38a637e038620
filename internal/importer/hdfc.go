package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// HDFCParser parses HDFC Bank account statement CSV exports.
type HDFCParser struct{}

const (
	hdfcDateFormat  = "02/01/06"
	hdfcNumFields   = 7
	hdfcColDate     = 0
	hdfcColNarr     = 1
	hdfcColRef      = 2
	hdfcColWithdraw = 4
	hdfcColDeposit  = 5
)

// Format returns the parser name.
func (p *HDFCParser) Format() string { return "hdfc" }

// Parse reads an HDFC statement and returns BankTransactions. Withdrawals
// become negative amounts, deposits positive.
func (p *HDFCParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = hdfcNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading hdfc CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := parseHDFCRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseHDFCRow(rec []string) (model.BankTransaction, error) {
	date, err := time.Parse(hdfcDateFormat, strings.TrimSpace(rec[hdfcColDate]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[hdfcColDate], err)
	}

	withdrawal, err := parseStatementAmount(rec[hdfcColWithdraw])
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing withdrawal %q: %w", rec[hdfcColWithdraw], err)
	}
	deposit, err := parseStatementAmount(rec[hdfcColDeposit])
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing deposit %q: %w", rec[hdfcColDeposit], err)
	}

	txType := "DEPOSIT"
	if !withdrawal.IsZero() {
		txType = "WITHDRAWAL"
	}

	narration := strings.TrimSpace(rec[hdfcColNarr])
	ref := strings.TrimSpace(rec[hdfcColRef])
	if ref == "" || strings.Trim(ref, "0") == "" {
		ref = makeRef("hdfc", date, narration)
	}

	return model.BankTransaction{
		Date:        date,
		Description: narration,
		Amount:      deposit.Sub(withdrawal),
		Reference:   ref,
		Type:        txType,
	}, nil
}

// parseStatementAmount reads "1,25,000.00" style amounts; blank is zero.
func parseStatementAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return money.ParseAmount(s)
}

// makeRef creates a reference like hdfc_20250103_UPIRAMESH.
func makeRef(bank string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", bank, date.Format("20060102"), strings.ToUpper(prefix))
}
