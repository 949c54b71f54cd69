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

func newUpdateCommand(opts *globalOptions) *cobra.Command {
	var (
		title       string
		description string
		state       string
	)

	cmd := &cobra.Command{
		Use:   "update <owner>/<repo> <number>",
		Short: "Update the title, description, or state of a pull request",
		Long: `Update the title, description, or state of a pull request.

Only the fields passed as flags change; everything else is left as is.
Setting --state merged merges the pull request, exactly like the merge
command. At least one of --title, --description, or --state is required.`,
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

			// Distinguish "flag not passed" from "flag set to empty" so
			// titles and descriptions can be cleared explicitly.
			updateOpts := dolthub.UpdatePullRequestOptions{}
			if cmd.Flags().Changed("title") {
				updateOpts.Title = &title
			}
			if cmd.Flags().Changed("description") {
				updateOpts.Description = &description
			}
			if cmd.Flags().Changed("state") {
				parsed, err := parsePullState(state)
				if err != nil {
					return err
				}
				updateOpts.State = &parsed
			}
			if updateOpts.Title == nil && updateOpts.Description == nil && updateOpts.State == nil {
				return fmt.Errorf("nothing to update: pass at least one of --title, --description, or --state")
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

			return runUpdate(ctx, client, owner, repo, id, updateOpts, cfg.Defaults.OutputFormat, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New pull request title")
	cmd.Flags().StringVar(&description, "description", "", "New pull request description")
	cmd.Flags().StringVar(&state, "state", "", "New state: open, closed, or merged")

	return cmd
}

// runUpdate executes the update command
func runUpdate(ctx context.Context, client dolthub.Client, owner, repo string, id int, updateOpts dolthub.UpdatePullRequestOptions, format string, stdout, stderr io.Writer) error {
	pull, err := client.UpdatePullRequest(ctx, owner, repo, id, updateOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Updated pull request %s/%s#%d\n", ui.Green.Render("✓"), owner, repo, pull.ID)

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
