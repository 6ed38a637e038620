package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/money"
	"github.com/cleared-dev/tally/internal/profitloss"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/runlog"
)

func newGrowthCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "growth <current> <previous>",
		Short: "Compare two periods (statement JSON from `pnl --format json`, or journal CSV)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := loadAggregate(args[0], a.log)
			if err != nil {
				return err
			}
			previous, err := loadAggregate(args[1], a.log)
			if err != nil {
				return err
			}

			g := profitloss.Growth(current, previous)
			md := report.GrowthMarkdown(g, a.reportOptions())
			if err := emit(cmd.OutOrStdout(), format, md, g); err != nil {
				return err
			}

			entry := runlog.NewEntry("growth", args[0], "compared",
				money.FormatPercentage(g.NetProfitGrowth, a.cfg.Report.PercentDecimals),
				"previous="+args[1])
			return a.record(entry)
		},
	}

	addFormatFlag(cmd, &format)

	return cmd
}
