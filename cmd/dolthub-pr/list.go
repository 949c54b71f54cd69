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

func newListCommand(opts *globalOptions) *cobra.Command {
	var (
		state      string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "list <owner>/<repo>",
		Short: "List pull requests in a DoltHub repository",
		Long: `List pull requests in a DoltHub repository.

The repository must be specified in the format: <owner>/<repo>
For example: dolthub/us-jails, dolthub/museum-stats

Authentication is required via DoltHub token:
  - Use --token flag to provide token directly
  - Or set DOLTHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
			if err != nil {
				return err
			}
			stateFilter, err := parseStateFilter(state)
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

			return runList(ctx, client, listOptions{
				owner:      owner,
				repo:       repo,
				state:      stateFilter,
				format:     cfg.Defaults.OutputFormat,
				outputFile: outputFile,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&state, "state", "all", "Filter by state: open, closed, merged, or all")
	cmd.Flags().StringVar(&outputFile, "output", "", "Write NDJSON records to a file instead of stdout")

	return cmd
}

type listOptions struct {
	owner      string
	repo       string
	state      dolthub.PullState
	format     string
	outputFile string
}

// runList executes the list command
func runList(ctx context.Context, client dolthub.Client, opts listOptions, stdout, stderr io.Writer) error {
	fmt.Fprintf(stderr, "Fetching pull requests from %s/%s...", opts.owner, opts.repo)

	summaries, err := client.ListPullRequests(ctx, opts.owner, opts.repo, dolthub.ListPullRequestsOptions{
		State: opts.state,
	})

	// Clear progress line
	fmt.Fprintf(stderr, "\r\033[K")
	if err != nil {
		return err
	}

	if opts.format == "table" && opts.outputFile == "" {
		renderListTable(stdout, summaries)
		return nil
	}

	writer, err := newRecordWriter(opts.format, opts.outputFile, stdout)
	if err != nil {
		return err
	}

	for _, pull := range summaries {
		if err := writer.Write(pull); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write pull request: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if len(summaries) > 0 {
		fmt.Fprintf(stderr, "Successfully listed %d pull requests\n", len(summaries))
	} else {
		fmt.Fprintf(stderr, "No pull requests found in %s/%s\n", opts.owner, opts.repo)
	}

	return nil
}

// renderListTable prints pull requests as a colored table.
func renderListTable(w io.Writer, summaries []dolthub.PullRequestSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, ui.Dim.Render("No pull requests."))
		return
	}

	fmt.Fprintln(w, ui.Dim.Render(fmt.Sprintf("%-6s %-8s %-52s %-16s %s", "ID", "STATE", "TITLE", "CREATOR", "CREATED")))
	for _, pull := range summaries {
		state := stateStyle(pull.State).Render(fmt.Sprintf("%-8s", pull.State))
		fmt.Fprintf(w, "%-6d %s %-52s %-16s %s\n",
			pull.ID,
			state,
			ui.White.Render(fmt.Sprintf("%-52s", truncate(pull.Title, 52))),
			pull.Creator,
			ui.Dim.Render(pull.CreatedAt.Format("2006-01-02")))
	}
}
