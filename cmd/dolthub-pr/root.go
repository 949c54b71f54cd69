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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/dolthub-pr/dolthub"
	"github.com/sirseerhq/dolthub-pr/internal/apierror"
	"github.com/sirseerhq/dolthub-pr/internal/config"
	"github.com/sirseerhq/dolthub-pr/internal/output"
	"github.com/sirseerhq/dolthub-pr/internal/ui"
	"github.com/sirseerhq/dolthub-pr/pkg/version"
)

// Timeouts for command contexts. Listing commands page through the API
// and get more room than single-request commands.
const (
	commandTimeout = 30 * time.Second
	listTimeout    = 2 * time.Minute
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	token      string
	tokenFile  string
	endpoint   string
	format     string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "dolthub-pr",
		Short:         "Manage pull requests on DoltHub data repositories",
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}
	rootCmd.Long = ui.Green.Render("dolthub-pr") + " " + ui.Cyan.Render(version.Version) + "\n" +
		ui.Dim.Render("Create, inspect, and merge pull requests on DoltHub data repositories through the same GraphQL API the dolthub.com web application uses.")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file path (default: .dolthub-pr.yaml, ~/.dolthub/config.yaml)")
	pf.StringVar(&opts.token, "token", "", "DoltHub API token (overrides the DOLTHUB_TOKEN env var)")
	pf.StringVar(&opts.tokenFile, "token-file", "", "Path to a file containing the DoltHub API token")
	pf.StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint URL (default: "+dolthub.DefaultEndpoint+")")
	pf.StringVar(&opts.format, "format", "", "Output format: ndjson, json, or table")

	rootCmd.AddCommand(
		newListCommand(opts),
		newShowCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newMergeCommand(opts),
		newChangelogCommand(opts),
		newCommitsCommand(opts),
		newCommentCommand(opts),
		newDiffSummaryCommand(opts),
		newQueryCommand(opts),
	)

	return rootCmd
}

// loadConfig loads the effective configuration for a command, applying
// repository overrides when repo is non-empty and flag overrides on top.
func (g *globalOptions) loadConfig(repo string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if repo != "" {
		cfg, err = config.LoadConfigForRepo(g.configPath, repo)
	} else {
		cfg, err = config.LoadConfig(g.configPath)
	}
	if err != nil {
		return nil, err
	}

	if g.endpoint != "" {
		cfg.API.Endpoint = g.endpoint
	}
	if g.format != "" {
		cfg.Defaults.OutputFormat = g.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// clientConfig resolves the credential source for the API client.
// Flags win over the token environment variable, which wins over the
// token file named in the config. Exactly one source ends up set; passing
// both --token and --token-file leaves both set so the client can reject
// the pair.
func (g *globalOptions) clientConfig(cfg *config.Config) dolthub.Config {
	c := dolthub.Config{
		Endpoint:  cfg.API.Endpoint,
		UserAgent: cfg.API.UserAgent,
	}

	if g.token != "" {
		c.Token = g.token
	}
	if g.tokenFile != "" {
		c.TokenFile = g.tokenFile
	}
	if c.Token != "" || c.TokenFile != "" {
		return c
	}

	if cfg.API.TokenEnv != "" {
		if token := os.Getenv(cfg.API.TokenEnv); token != "" {
			c.Token = token
			return c
		}
	}

	c.TokenFile = cfg.API.TokenFile
	return c
}

// newClient builds the API client from the resolved configuration.
func (g *globalOptions) newClient(cfg *config.Config) (dolthub.Client, error) {
	c := g.clientConfig(cfg)
	if c.Token == "" && c.TokenFile == "" {
		return nil, fmt.Errorf("DoltHub token not found. Set %s, use --token, or configure token_file", cfg.API.TokenEnv)
	}
	return dolthub.New(c)
}

// parseRepository parses an owner/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// parsePullID parses a pull request number argument.
func parsePullID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pull request number: %s", arg)
	}
	return id, nil
}

// parsePullState parses a single pull request state.
func parsePullState(arg string) (dolthub.PullState, error) {
	switch strings.ToLower(arg) {
	case "open":
		return dolthub.StateOpen, nil
	case "closed":
		return dolthub.StateClosed, nil
	case "merged":
		return dolthub.StateMerged, nil
	}
	return "", fmt.Errorf("invalid state %q: must be open, closed, or merged", arg)
}

// parseStateFilter parses the --state flag of the list command, where
// "all" (the default) means no filter.
func parseStateFilter(arg string) (dolthub.PullState, error) {
	if arg == "" || strings.EqualFold(arg, "all") {
		return "", nil
	}
	state, err := parsePullState(arg)
	if err != nil {
		return "", fmt.Errorf("invalid state %q: must be open, closed, merged, or all", arg)
	}
	return state, nil
}

// stateStyle returns the display style for a pull request state.
func stateStyle(state dolthub.PullState) lipgloss.Style {
	switch state {
	case dolthub.StateOpen:
		return ui.Green
	case dolthub.StateMerged:
		return ui.Cyan
	case dolthub.StateClosed:
		return ui.Red
	}
	return ui.White
}

// truncate shortens s to at most n runes, ending with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// newRecordWriter returns the writer records go to: an NDJSON file when
// outputFile is set, otherwise the requested format on stdout. Table
// output never reaches this path.
func newRecordWriter(format, outputFile string, stdout io.Writer) (output.OutputWriter, error) {
	if outputFile != "" {
		writer, err := output.NewFileWriter(outputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return writer, nil
	}
	return output.NewFormatWriter(stdout, format)
}

// mapErrorToExitCode maps errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, dolthub.ErrCredentialSource) {
		return 2 // Credential misconfiguration
	}

	inspector := apierror.NewInspector()
	switch {
	// Upstream timeouts come back as server answers, not transport
	// failures. Classify them before the network check so the word
	// "timeout" in the message doesn't route them to exit code 3.
	case inspector.IsUpstreamTimeout(err):
		return 1
	case inspector.IsAuthError(err) || inspector.IsNotFoundError(err):
		return 2 // Authentication/authorization errors
	case inspector.IsNetworkError(err):
		return 3 // Network errors
	}

	return 1 // General error
}
