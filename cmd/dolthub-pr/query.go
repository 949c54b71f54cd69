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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/dolthub-pr/dolthub"
)

func newQueryCommand(opts *globalOptions) *cobra.Command {
	var (
		query     string
		variables string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Send a raw GraphQL document to the DoltHub API",
		Long: `Send a raw GraphQL document to the DoltHub API and print the
response body exactly as the server returned it.

The document is taken from --query, or read from stdin when --query is
omitted. Variables are passed as a JSON object via --variables.

Example:

  dolthub-pr query --query 'query ($ownerName: String!) {
    repo(repoName: {ownerName: $ownerName, repoName: "us-jails"}) { forkCount }
  }' --variables '{"ownerName": "dolthub"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			return runQuery(ctx, client, query, variables, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "GraphQL document (default: read from stdin)")
	cmd.Flags().StringVar(&variables, "variables", "", "Query variables as a JSON object")

	return cmd
}

// runQuery executes the query command
func runQuery(ctx context.Context, client dolthub.Client, query, variables string, stdin io.Reader, stdout io.Writer) error {
	if query == "" || query == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read query from stdin: %w", err)
		}
		query = string(data)
	}
	if query == "" {
		return fmt.Errorf("no query given: pass --query or pipe a document on stdin")
	}

	var vars map[string]any
	if variables != "" {
		if err := json.Unmarshal([]byte(variables), &vars); err != nil {
			return fmt.Errorf("invalid --variables: %w", err)
		}
	}

	body, err := client.RawQuery(ctx, query, vars)
	if err != nil {
		return err
	}

	// The response body is passed through byte for byte.
	if _, err := stdout.Write(body); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
