package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/payload"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/runlog"
	"github.com/cleared-dev/tally/internal/trading"
)

func newReconcileCommand(a *app) *cobra.Command {
	var format string
	var tolerance float64
	var strict, save bool

	cmd := &cobra.Command{
		Use:   "reconcile <file>",
		Short: "Check that a trading account's two sides balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := decodeFile(args[0], payload.DecodeTrading)
			if err != nil {
				return err
			}

			tol := a.cfg.Reconcile.ToleranceDecimal()
			if cmd.Flags().Changed("tolerance") {
				tol = money.FromFloat(tolerance)
			}
			r := trading.Reconcile(in, tol)

			opts := a.reportOptions()
			md := report.ReconciliationMarkdown(r, opts)
			if err := emit(cmd.OutOrStdout(), format, md, r); err != nil {
				return err
			}

			var written []string
			if save {
				path, err := a.saveReport(args[0], "trading", md)
				if err != nil {
					return err
				}
				written = append(written, path)
			}

			outcome := "balanced"
			if !r.Balanced {
				outcome = "unbalanced"
				a.log.Warn("trading account does not balance",
					"lhs", r.LHSTotal.StringFixed(2), "rhs", r.RHSTotal.StringFixed(2), "discrepancy", r.Discrepancy.StringFixed(2))
			}
			entry := runlog.NewEntry("reconcile", args[0], outcome,
				money.FormatCurrency(r.Discrepancy, opts.Currency),
				"sales_source="+r.SalesSource)
			if err := a.record(entry, written...); err != nil {
				return err
			}

			if strict && !r.Balanced {
				return errors.New("trading account is not balanced")
			}
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "balance tolerance in currency units (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the account does not balance")
	cmd.Flags().BoolVar(&save, "save", false, "save the markdown report under the reports directory")

	return cmd
}
