package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/payload"
	"github.com/cleared-dev/tally/internal/profitloss"
)

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// loadTransactions reads a journal CSV or a JSON transaction payload.
// Journal files must pass validation. JSON payloads are only checked, and
// violations are logged as warnings.
func loadTransactions(path string, log *slog.Logger) (model.TransactionSet, error) {
	if isCSV(path) {
		txns, err := journal.ReadFile(path)
		if err != nil {
			return model.TransactionSet{}, err
		}
		if errs := journal.Validate(txns); len(errs) > 0 {
			for _, e := range errs {
				log.Error("invalid journal record", "file", path, "rule", e.Rule, "id", e.TxnID, "row", e.Row, "problem", e.Description)
			}
			return model.TransactionSet{}, fmt.Errorf("%s: %d validation error(s)", path, len(errs))
		}
		return journal.Set(txns), nil
	}

	set, err := decodeFile(path, payload.DecodeTransactions)
	if err != nil {
		return model.TransactionSet{}, err
	}
	for _, e := range journal.Validate(set.All()) {
		log.Warn("suspect transaction", "file", path, "rule", e.Rule, "id", e.TxnID, "row", e.Row, "problem", e.Description)
	}
	return set, nil
}

// loadAggregate reads a saved statement JSON, or computes one from a
// journal CSV.
func loadAggregate(path string, log *slog.Logger) (*profitloss.Aggregate, error) {
	if isCSV(path) {
		set, err := loadTransactions(path, log)
		if err != nil {
			return nil, err
		}
		a := profitloss.Calculate(set)
		return &a, nil
	}

	a, err := decodeFile(path, payload.DecodeAggregate)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.New(path + ": empty statement")
	}
	return a, nil
}

func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
