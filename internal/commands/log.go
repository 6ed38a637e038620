package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/runlog"
)

func newLogCommand(a *app) *cobra.Command {
	var format string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recorded runs, newest last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := runlog.Read(a.root)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			if entries == nil {
				entries = []runlog.Entry{}
			}
			return emit(cmd.OutOrStdout(), format, runsMarkdown(entries), entries)
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many runs (0 for all)")

	return cmd
}

func runsMarkdown(entries []runlog.Entry) string {
	if len(entries) == 0 {
		return "No runs recorded.\n"
	}

	var b strings.Builder
	b.WriteString("| Time | Command | Source | Outcome | Amount |\n|---|---|---|---|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			e.Timestamp.Format(time.DateTime), e.Command, e.Source, e.Outcome, e.Amount)
	}
	return b.String()
}
