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

func newCommitsCommand(opts *globalOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "commits <owner>/<repo> <number>",
		Short: "List the commits of a pull request",
		Long: `List the commits a pull request would merge, newest first.

The table view also shows the merge state: the tip commits of the source
and destination branches and their merge base.`,
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

			return runCommits(ctx, client, owner, repo, id, cfg.Defaults.OutputFormat, outputFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Write NDJSON records to a file instead of stdout")

	return cmd
}

// runCommits executes the commits command
func runCommits(ctx context.Context, client dolthub.Client, owner, repo string, id int, format, outputFile string, stdout, stderr io.Writer) error {
	pullCommits, err := client.ListPullCommits(ctx, owner, repo, id)
	if err != nil {
		return err
	}

	if format == "table" && outputFile == "" {
		renderCommitsTable(stdout, pullCommits)
		return nil
	}

	writer, err := newRecordWriter(format, outputFile, stdout)
	if err != nil {
		return err
	}
	for _, commit := range pullCommits.Commits {
		if err := writer.Write(commit); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write commit: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Listed %d commits for %s/%s#%d\n", len(pullCommits.Commits), owner, repo, id)
	return nil
}

// renderCommitsTable prints the merge state and commits of a pull request.
func renderCommitsTable(w io.Writer, pullCommits *dolthub.PullCommits) {
	ms := pullCommits.MergeState
	if ms.PremergeFromCommit != "" || ms.PremergeToCommit != "" || ms.MergeBaseCommit != "" {
		fmt.Fprintln(w, ui.Cyan.Render("From:       ")+ui.White.Render(shortCommit(ms.PremergeFromCommit)))
		fmt.Fprintln(w, ui.Cyan.Render("To:         ")+ui.White.Render(shortCommit(ms.PremergeToCommit)))
		fmt.Fprintln(w, ui.Cyan.Render("Merge base: ")+ui.White.Render(shortCommit(ms.MergeBaseCommit)))
		fmt.Fprintln(w)
	}

	if len(pullCommits.Commits) == 0 {
		fmt.Fprintln(w, ui.Dim.Render("No commits."))
		return
	}

	fmt.Fprintln(w, ui.Dim.Render(fmt.Sprintf("%-8s %-16s %-17s %s", "COMMIT", "AUTHOR", "TIME", "MESSAGE")))
	for _, commit := range pullCommits.Commits {
		fmt.Fprintf(w, "%s %-16s %s %s\n",
			ui.White.Render(fmt.Sprintf("%-8s", shortCommit(commit.CommitID))),
			commit.Committer,
			ui.Dim.Render(commit.CommittedAt.Format("2006-01-02 15:04")),
			truncate(commit.Message, 70))
	}
}
