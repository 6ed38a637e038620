package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

var prefixes = map[model.Kind]string{
	model.KindSale:     "SAL",
	model.KindPurchase: "PUR",
	model.KindReceipt:  "RCT",
	model.KindPayment:  "PAY",
}

// Prefix returns the ID prefix for kind, e.g. "SAL" for sales.
func Prefix(kind model.Kind) string {
	if p, ok := prefixes[kind]; ok {
		return p
	}
	return "TXN"
}

// FormatTxnID returns a transaction ID like "SAL-2025-01-001".
func FormatTxnID(kind model.Kind, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", Prefix(kind), year, month, seq)
}

// ParseTxnID parses "SAL-2025-01-001" into kind, year, month, seq.
func ParseTxnID(txnID string) (kind model.Kind, year, month, seq int, err error) {
	parts := strings.SplitN(txnID, "-", 4)
	if len(parts) != 4 {
		return "", 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", txnID)
	}

	for k, p := range prefixes {
		if p == parts[0] {
			kind = k
		}
	}
	if kind == "" {
		return "", 0, 0, 0, fmt.Errorf("unknown prefix in transaction ID %q", txnID)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", txnID, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", txnID, err)
	}
	if month < 1 || month > 12 {
		return "", 0, 0, 0, fmt.Errorf("month %d out of range in transaction ID %q", month, txnID)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", txnID, err)
	}

	return kind, year, month, seq, nil
}

// Sequencer hands out per-kind, per-month sequence numbers.
type Sequencer struct {
	next map[string]int
}

// NewSequencer creates a Sequencer that continues after the IDs in existing.
// IDs that do not parse are ignored.
func NewSequencer(existing ...string) *Sequencer {
	s := &Sequencer{next: make(map[string]int)}
	for _, e := range existing {
		kind, year, month, seq, err := ParseTxnID(e)
		if err != nil {
			continue
		}
		key := FormatTxnID(kind, year, month, 0)
		if seq >= s.next[key] {
			s.next[key] = seq + 1
		}
	}
	return s
}

// Next returns the next ID for kind in year/month.
func (s *Sequencer) Next(kind model.Kind, year, month int) string {
	key := FormatTxnID(kind, year, month, 0)
	seq := s.next[key]
	if seq == 0 {
		seq = 1
	}
	s.next[key] = seq + 1
	return FormatTxnID(kind, year, month, seq)
}
