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

func newCommentCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add, edit, or delete pull request comments",
		Long: `Add, edit, or delete pull request comments.

Editing and deleting take the comment id reported by the changelog
command, a path of the form:

  repositoryOwners/<owner>/repositories/<repo>/pulls/<number>/comments/<uuid>`,
	}

	cmd.AddCommand(
		newCommentAddCommand(opts),
		newCommentEditCommand(opts),
		newCommentDeleteCommand(opts),
	)

	return cmd
}

func newCommentAddCommand(opts *globalOptions) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "add <owner>/<repo> <number>",
		Short: "Comment on a pull request",
		Args:  cobra.ExactArgs(2),
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

			return runCommentAdd(ctx, client, owner, repo, id, body, cfg.Defaults.OutputFormat, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment text (required)")
	cmd.MarkFlagRequired("body")

	return cmd
}

func newCommentEditCommand(opts *globalOptions) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "edit <owner>/<repo> <comment-id>",
		Short: "Replace the text of a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
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

			return runCommentEdit(ctx, client, owner, repo, args[1], body, cfg.Defaults.OutputFormat, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "New comment text (required)")
	cmd.MarkFlagRequired("body")

	return cmd
}

func newCommentDeleteCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <owner>/<repo> <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
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

			return runCommentDelete(ctx, client, owner, repo, args[1], cmd.ErrOrStderr())
		},
	}

	return cmd
}

// runCommentAdd executes the comment add command
func runCommentAdd(ctx context.Context, client dolthub.Client, owner, repo string, id int, body, format string, stdout, stderr io.Writer) error {
	comment, err := client.AddComment(ctx, owner, repo, id, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Added comment to %s/%s#%d\n", ui.Green.Render("✓"), owner, repo, id)
	return writeComment(comment, format, stdout)
}

// runCommentEdit executes the comment edit command
func runCommentEdit(ctx context.Context, client dolthub.Client, owner, repo, commentID, body, format string, stdout, stderr io.Writer) error {
	comment, err := client.UpdateComment(ctx, owner, repo, commentID, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Updated comment\n", ui.Green.Render("✓"))
	return writeComment(comment, format, stdout)
}

// runCommentDelete executes the comment delete command
func runCommentDelete(ctx context.Context, client dolthub.Client, owner, repo, commentID string, stderr io.Writer) error {
	if err := client.DeleteComment(ctx, owner, repo, commentID); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s Deleted comment\n", ui.Green.Render("✓"))
	return nil
}

// writeComment renders a comment in the requested format.
func writeComment(comment *dolthub.Comment, format string, stdout io.Writer) error {
	if format == "table" {
		fmt.Fprintln(stdout, ui.Cyan.Render("Comment: ")+ui.White.Render(comment.ID))
		fmt.Fprintln(stdout, ui.Cyan.Render("Author:  ")+ui.White.Render(comment.Author))
		fmt.Fprintln(stdout, ui.Cyan.Render("Created: ")+ui.Dim.Render(comment.CreatedAt.Format("2006-01-02 15:04")))
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, comment.Body)
		return nil
	}

	writer, err := newRecordWriter(format, "", stdout)
	if err != nil {
		return err
	}
	if err := writer.Write(comment); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write comment: %w", err)
	}
	return writer.Close()
}
