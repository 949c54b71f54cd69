// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/dolthub-pr/dolthub"
	"github.com/sirseerhq/dolthub-pr/internal/ui"
)

func newChangelogCommand(opts *globalOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "changelog <owner>/<repo> <number>",
		Short: "Show the change log of a pull request",
		Long: `Show the change log of a pull request in chronological order.

The change log mixes several kinds of entries: comments, commits pushed
to the source branch, commit summaries, and state changes such as the
pull request being opened or merged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
			if err != nil {
				return err
			}
			id, err := parsePullID(args[1])
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig("")
			if err != nil {
				return err
			}
			client, err := opts.newClient(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return runChangelog(ctx, client, owner, repo, id, cfg.Defaults.OutputFormat, outputFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Write NDJSON records to a file instead of stdout")

	return cmd
}

// runChangelog executes the changelog command
func runChangelog(ctx context.Context, client dolthub.Client, owner, repo string, id int, format, outputFile string, stdout, stderr io.Writer) error {
	entries, err := client.ListChangeLog(ctx, owner, repo, id)
	if err != nil {
		return err
	}

	if format == "table" && outputFile == "" {
		renderChangelogTable(stdout, entries)
		return nil
	}

	writer, err := newRecordWriter(format, outputFile, stdout)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write(entry); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write change log entry: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Listed %d change log entries for %s/%s#%d\n", len(entries), owner, repo, id)
	return nil
}

// renderChangelogTable prints change log entries as a colored table.
func renderChangelogTable(w io.Writer, entries []dolthub.ChangeLogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Dim.Render("No change log entries."))
		return
	}

	fmt.Fprintln(w, ui.Dim.Render(fmt.Sprintf("%-17s %-9s %-16s %s", "TIME", "KIND", "USER", "DETAIL")))
	for _, entry := range entries {
		kind := kindStyle(entry.Kind).Render(fmt.Sprintf("%-9s", entry.Kind))
		fmt.Fprintf(w, "%s %s %-16s %s\n",
			ui.Dim.Render(entry.CreatedAt.Format("2006-01-02 15:04")),
			kind,
			entry.User,
			entryDetail(entry))
	}
}

// entryDetail renders the variant part of a change log entry.
func entryDetail(entry dolthub.ChangeLogEntry) string {
	switch entry.Kind {
	case dolthub.ChangeLogComment:
		return truncate(entry.Message, 80)
	case dolthub.ChangeLogCommit:
		return shortCommit(entry.CommitID) + " " + truncate(entry.Message, 70)
	case dolthub.ChangeLogSummary:
		return fmt.Sprintf("%d commits", entry.NumCommits)
	case dolthub.ChangeLogLog:
		return entry.Activity
	}
	return entry.Message
}

// kindStyle returns the display style for a change log entry kind.
func kindStyle(kind dolthub.ChangeLogKind) lipgloss.Style {
	switch kind {
	case dolthub.ChangeLogComment:
		return ui.Cyan
	case dolthub.ChangeLogCommit:
		return ui.White
	case dolthub.ChangeLogSummary:
		return ui.Green
	case dolthub.ChangeLogLog:
		return ui.Dim
	}
	return ui.White
}

// shortCommit abbreviates a commit hash for display.
func shortCommit(commitID string) string {
	if len(commitID) <= 7 {
		return commitID
	}
	return commitID[:7]
}
