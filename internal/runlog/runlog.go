// Package runlog keeps a CSV audit trail of every statement, reconciliation
// and import the CLI produces.
package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log.
type Entry struct {
	RunID     string    `json:"runId"`
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"` // pnl, reconcile, growth, import
	Source    string    `json:"source"`  // input file
	Outcome   string    `json:"outcome"` // profit/loss/break-even, balanced/unbalanced, ...
	Amount    string    `json:"amount"`  // headline figure, already formatted
	Details   string    `json:"details"`
}

// Header is the CSV header for run-log.csv.
const Header = "run_id,timestamp,command,source,outcome,amount,details"

// File is the run log location relative to the workspace root.
const File = "logs/run-log.csv"

const (
	numFields    = 7
	colRunID     = 0
	colTimestamp = 1
	colCommand   = 2
	colSource    = 3
	colOutcome   = 4
	colAmount    = 5
	colDetails   = 6
)

// NewEntry stamps an entry with a fresh run ID and the current UTC time.
func NewEntry(command, source, outcome, amount, details string) Entry {
	return Entry{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Command:   command,
		Source:    source,
		Outcome:   outcome,
		Amount:    amount,
		Details:   details,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colCommand] = e.Command
	row[colSource] = e.Source
	row[colOutcome] = e.Outcome
	row[colAmount] = e.Amount
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		RunID:     record[colRunID],
		Timestamp: ts,
		Command:   record[colCommand],
		Source:    record[colSource],
		Outcome:   record[colOutcome],
		Amount:    record[colAmount],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/run-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	path := filepath.Join(root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
