package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/runlog"
)

func newImportCommand(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert bank statement CSVs in import/ into journal records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown bank format %q (available: %v)", format, importer.DefaultRegistry().Formats())
			}
			if !filepath.IsAbs(out) {
				out = filepath.Join(a.root, out)
			}

			n, err := runImport(a, parser, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transaction(s) into %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "hdfc", "bank statement format")
	cmd.Flags().StringVar(&out, "out", "journal.csv", "journal CSV to append to")

	return cmd
}

func runImport(a *app, parser importer.Parser, out string) (int, error) {
	files, err := importer.Scan(a.root)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		a.log.Info("nothing to import", "dir", filepath.Join(a.root, "import"))
		return 0, nil
	}

	existing, err := journal.ReadFile(out)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	ids := make([]string, len(existing))
	for i, t := range existing {
		ids[i] = t.ID
	}
	seq := id.NewSequencer(ids...)

	var added []model.Transaction
	var entries []runlog.Entry
	for _, file := range files {
		bank, err := parseStatement(parser, file.Path)
		if err != nil {
			return 0, err
		}
		txns := importer.ToTransactions(bank, seq)
		added = append(added, txns...)
		entries = append(entries, runlog.NewEntry("import", file.Name, "imported",
			fmt.Sprint(len(txns)), "format="+parser.Format()))
		a.log.Info("parsed statement", "file", file.Name, "rows", len(bank), "transactions", len(txns))
	}

	all := append(existing, added...)
	if errs := journal.Validate(all); len(errs) > 0 {
		for _, e := range errs {
			a.log.Error("invalid journal record", "rule", e.Rule, "id", e.TxnID, "row", e.Row, "problem", e.Description)
		}
		return 0, fmt.Errorf("import would produce %d invalid record(s)", len(errs))
	}
	if err := journal.WriteFile(out, all); err != nil {
		return 0, err
	}

	for _, file := range files {
		if err := importer.MarkProcessed(a.root, file.Name); err != nil {
			return 0, err
		}
	}

	if err := runlog.Append(a.root, entries); err != nil {
		return 0, fmt.Errorf("writing run log: %w", err)
	}
	return len(added), nil
}

func parseStatement(parser importer.Parser, path string) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	bank, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return bank, nil
}
