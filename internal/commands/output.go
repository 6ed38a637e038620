package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/runlog"
)

// Output formats accepted by --format.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", formatText, "output format: text, markdown or json")
}

// emit writes md (styled for text) or v as JSON.
func emit(w io.Writer, format, md string, v any) error {
	switch format {
	case formatJSON:
		return report.WriteJSON(w, v)
	case formatText, formatMarkdown:
		out, err := report.Render(md, format == formatText)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}

// record appends e to the run log and, when auto-commit is on and the
// workspace is a git repository, commits the log plus any extra paths.
func (a *app) record(e runlog.Entry, extra ...string) error {
	if err := runlog.Append(a.root, []runlog.Entry{e}); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	a.log.Debug("run recorded", "run_id", e.RunID, "command", e.Command, "outcome", e.Outcome)

	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.root) {
		return nil
	}

	paths := []string{filepath.FromSlash(runlog.File)}
	for _, p := range extra {
		rel, err := filepath.Rel(a.root, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			a.log.Warn("not committing file outside workspace", "path", p)
			continue
		}
		paths = append(paths, rel)
	}

	msg := fmt.Sprintf("%s: %s (%s)", e.Command, filepath.Base(e.Source), e.Outcome)
	author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(a.root, msg, author, paths...)
	if err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	a.log.Info("committed", "hash", hash, "message", msg)
	return nil
}
