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

func newMergeCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <owner>/<repo> <number>",
		Short: "Merge an open pull request",
		Long: `Merge an open pull request into its destination branch.

The server performs the merge; the command waits for the result. Merging
a pull request that is already merged or closed fails.`,
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

			return runMerge(ctx, client, owner, repo, id, cfg.Defaults.OutputFormat, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}

// runMerge executes the merge command
func runMerge(ctx context.Context, client dolthub.Client, owner, repo string, id int, format string, stdout, stderr io.Writer) error {
	pull, err := client.MergePullRequest(ctx, owner, repo, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Merged pull request %s/%s#%d\n", ui.Green.Render("✓"), owner, repo, pull.ID)

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
