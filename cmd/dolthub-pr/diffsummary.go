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

	"github.com/spf13/cobra"

	"github.com/sirseerhq/dolthub-pr/dolthub"
	"github.com/sirseerhq/dolthub-pr/internal/ui"
)

func newDiffSummaryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff-summary <owner>/<repo> <number>",
		Short: "Show row and cell counts for the changes of a pull request",
		Long: `Show how many rows and cells a pull request adds, modifies, and
deletes across all tables.

The counts compare the premerge commits recorded on the pull request, so
they stay stable after the pull request is merged.`,
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

			ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
			defer cancel()

			return runDiffSummary(ctx, client, owner, repo, id, cfg.Defaults.OutputFormat, cmd.OutOrStdout())
		},
	}

	return cmd
}

// runDiffSummary executes the diff-summary command
func runDiffSummary(ctx context.Context, client dolthub.Client, owner, repo string, id int, format string, stdout io.Writer) error {
	pullCommits, err := client.ListPullCommits(ctx, owner, repo, id)
	if err != nil {
		return err
	}

	ms := pullCommits.MergeState
	if ms.PremergeFromCommit == "" || ms.PremergeToCommit == "" {
		return fmt.Errorf("pull request %s/%s#%d has no premerge commits to compare", owner, repo, id)
	}

	diff, err := client.DiffSummary(ctx,
		dolthub.CommitRef{Owner: owner, Repo: repo, CommitID: ms.PremergeFromCommit},
		dolthub.CommitRef{Owner: owner, Repo: repo, CommitID: ms.PremergeToCommit},
	)
	if err != nil {
		return err
	}

	if format == "table" {
		renderDiffSummary(stdout, diff)
		return nil
	}

	writer, err := newRecordWriter(format, "", stdout)
	if err != nil {
		return err
	}
	if err := writer.Write(diff); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write diff summary: %w", err)
	}
	return writer.Close()
}

// renderDiffSummary prints row and cell counts as labeled lines.
func renderDiffSummary(w io.Writer, diff *dolthub.DiffSummary) {
	fmt.Fprintln(w, ui.Cyan.Render("Rows:  ")+ui.White.Render(fmt.Sprintf(
		"%d total, %d added, %d modified, %d deleted, %d unmodified",
		diff.Rows.Count, diff.Rows.Added, diff.Rows.Modified, diff.Rows.Deleted, diff.Rows.Unmodified)))
	fmt.Fprintln(w, ui.Cyan.Render("Cells: ")+ui.White.Render(fmt.Sprintf(
		"%d total, %d modified, %d unmodified",
		diff.Cells.Count, diff.Cells.Modified, diff.Cells.Unmodified)))
}
