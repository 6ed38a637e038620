package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/runlog"
)

func newPnLCommand(a *app) *cobra.Command {
	var format, xlsxPath string
	var save bool

	cmd := &cobra.Command{
		Use:   "pnl <file>",
		Short: "Compute a profit & loss statement from a journal CSV or transactions JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadTransactions(args[0], a.log)
			if err != nil {
				return err
			}
			s := report.NewStatement(profitloss.Calculate(set))
			opts := a.reportOptions()
			md := report.StatementMarkdown(s, opts)

			if err := emit(cmd.OutOrStdout(), format, md, s); err != nil {
				return err
			}

			var written []string
			if xlsxPath != "" {
				if err := report.WriteStatementXLSX(xlsxPath, s, opts); err != nil {
					return err
				}
				a.log.Info("wrote workbook", "path", xlsxPath)
				written = append(written, xlsxPath)
			}
			if save {
				path, err := a.saveReport(args[0], "pnl", md)
				if err != nil {
					return err
				}
				written = append(written, path)
			}

			entry := runlog.NewEntry("pnl", args[0], string(s.Status.Status),
				money.FormatCurrency(s.Summary.NetProfit, opts.Currency),
				fmt.Sprintf("income=%s expenses=%s transactions=%d",
					s.Income.Total.StringFixed(2), s.Expenses.Total.StringFixed(2), s.QuickStats.TotalTransactions))
			return a.record(entry, absPaths(written)...)
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the statement to this XLSX file")
	cmd.Flags().BoolVar(&save, "save", false, "save the markdown report under the reports directory")

	return cmd
}

// saveReport writes md to <root>/<report dir>/<input name>-<suffix>.md.
func (a *app) saveReport(source, suffix, md string) (string, error) {
	dir := filepath.Join(a.root, a.cfg.Report.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	path := filepath.Join(dir, base+"-"+suffix+".md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	a.log.Info("saved report", "path", path)
	return path, nil
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			out = append(out, abs)
		}
	}
	return out
}
