// Package journal reads, writes and validates transaction records stored
// as CSV.
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// Header is the CSV header for a transaction journal.
const Header = "id,kind,date,amount,is_expense,counterparty,reference,notes"

const (
	numFields  = 8
	dateFormat = "2006-01-02"
	colID      = 0
	colKind    = 1
	colDate    = 2
	colAmount  = 3
	colExpense = 4
	colCparty  = 5
	colRef     = 6
	colNotes   = 7
)

// ReadTransactions reads all records from a journal CSV reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes records to a journal CSV writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile reads a journal CSV from disk.
func ReadFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return txns, nil
}

// WriteFile writes txns to path, replacing any existing file.
func WriteFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal %s: %w", path, err)
	}
	if err := WriteTransactions(f, txns); err != nil {
		f.Close()
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return f.Close()
}

// Set groups records into the four statement lists.
func Set(txns []model.Transaction) model.TransactionSet {
	var set model.TransactionSet
	for _, txn := range txns {
		set.Add(txn)
	}
	return set
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colKind] = string(txn.Kind)
	if !txn.Date.IsZero() {
		row[colDate] = txn.Date.Format(dateFormat)
	}
	row[colAmount] = txn.Amount.StringFixed(2)
	if txn.IsExpense {
		row[colExpense] = "true"
	}
	row[colCparty] = txn.Counterparty
	row[colRef] = txn.Reference
	row[colNotes] = txn.Notes
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var date time.Time
	if record[colDate] != "" {
		var err error
		date, err = time.Parse(dateFormat, record[colDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	amount := decimal.Zero
	if record[colAmount] != "" {
		var err error
		amount, err = money.ParseAmount(record[colAmount])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
	}

	var isExpense bool
	if record[colExpense] != "" {
		var err error
		isExpense, err = strconv.ParseBool(record[colExpense])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing is_expense %q: %w", record[colExpense], err)
		}
	}

	return model.Transaction{
		ID:           record[colID],
		Kind:         model.Kind(strings.ToLower(strings.TrimSpace(record[colKind]))),
		Date:         date,
		Amount:       amount,
		IsExpense:    isExpense,
		Counterparty: record[colCparty],
		Reference:    record[colRef],
		Notes:        record[colNotes],
	}, nil
}
