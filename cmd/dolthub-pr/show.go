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

func newShowCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <owner>/<repo> <number>",
		Short: "Show a single pull request",
		Long: `Show the full details of one pull request: title, state, creator,
source and destination branches, and description.`,
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

			return runShow(ctx, client, owner, repo, id, cfg.Defaults.OutputFormat, cmd.OutOrStdout())
		},
	}

	return cmd
}

// runShow executes the show command
func runShow(ctx context.Context, client dolthub.Client, owner, repo string, id int, format string, stdout io.Writer) error {
	pull, err := client.GetPullRequest(ctx, owner, repo, id)
	if err != nil {
		return err
	}

	if format == "table" {
		renderPullDetail(stdout, pull)
		return nil
	}

	writer, err := newRecordWriter(format, "", stdout)
	if err != nil {
		return err
	}
	if err := writer.Write(pull); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write pull request: %w", err)
	}
	return writer.Close()
}

// renderPullDetail prints one pull request as labeled lines.
func renderPullDetail(w io.Writer, pull *dolthub.PullRequest) {
	fmt.Fprintln(w, ui.White.Render(fmt.Sprintf("#%d %s", pull.ID, pull.Title)))
	fmt.Fprintln(w, ui.Cyan.Render("State:       ")+stateStyle(pull.State).Render(string(pull.State)))
	fmt.Fprintln(w, ui.Cyan.Render("Creator:     ")+ui.White.Render(pull.Creator))
	fmt.Fprintln(w, ui.Cyan.Render("Source:      ")+ui.White.Render(formatBranchRef(pull.Source)))
	fmt.Fprintln(w, ui.Cyan.Render("Destination: ")+ui.White.Render(formatBranchRef(pull.Destination)))
	if pull.Fork {
		fmt.Fprintln(w, ui.Cyan.Render("Fork:        ")+ui.White.Render("yes"))
	}
	if pull.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, pull.Description)
	}
}

// formatBranchRef renders owner/repo/branch as one path.
func formatBranchRef(ref dolthub.BranchRef) string {
	return fmt.Sprintf("%s/%s/%s", ref.Owner, ref.Repo, ref.Branch)
}
