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

func newCreateCommand(opts *globalOptions) *cobra.Command {
	var (
		title       string
		description string
		fromBranch  string
		toBranch    string
		fromOwner   string
		fromRepo    string
	)

	cmd := &cobra.Command{
		Use:   "create <owner>/<repo>",
		Short: "Open a pull request against a DoltHub repository",
		Long: `Open a pull request against a DoltHub repository.

By default the pull request proposes merging a branch of the repository
into its default branch. Use --from-owner and --from-repo to propose a
branch of a fork instead.

The destination branch defaults to the repository's configured branch
(main unless overridden in the config file).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig(args[0])
			if err != nil {
				return err
			}
			client, err := opts.newClient(cfg)
			if err != nil {
				return err
			}

			if toBranch == "" {
				toBranch = cfg.Defaults.Branch
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return runCreate(ctx, client, owner, repo, dolthub.CreatePullRequestOptions{
				Title:       title,
				Description: description,
				FromBranch:  fromBranch,
				ToBranch:    toBranch,
				FromOwner:   fromOwner,
				FromRepo:    fromRepo,
			}, cfg.Defaults.OutputFormat, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Pull request title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Pull request description")
	cmd.Flags().StringVar(&fromBranch, "from-branch", "", "Branch the changes come from (required)")
	cmd.Flags().StringVar(&toBranch, "to-branch", "", "Branch the changes merge into (default: configured branch)")
	cmd.Flags().StringVar(&fromOwner, "from-owner", "", "Owner of the fork the changes come from")
	cmd.Flags().StringVar(&fromRepo, "from-repo", "", "Name of the fork the changes come from")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("from-branch")

	return cmd
}

// runCreate executes the create command
func runCreate(ctx context.Context, client dolthub.Client, owner, repo string, createOpts dolthub.CreatePullRequestOptions, format string, stdout, stderr io.Writer) error {
	pull, err := client.CreatePullRequest(ctx, owner, repo, createOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Created pull request %s/%s#%d\n", ui.Green.Render("✓"), owner, repo, pull.ID)

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
