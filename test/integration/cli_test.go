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

package integration

import (
	"strings"
	"testing"

	"github.com/sirseerhq/dolthub-pr/test/testutil"
)

// noTokenEnv clears every credential source so the binary behaves as
// it would on a machine with nothing configured.
func noTokenEnv() map[string]string {
	return map[string]string{
		"DOLTHUB_TOKEN":            "",
		"DOLTHUB_TOKEN_FILE":       "",
		"DOLTHUB_GRAPHQL_ENDPOINT": "",
	}
}

func TestCLI_InvalidRepoFormat(t *testing.T) {
	tests := []struct {
		name string
		repo string
	}{
		{name: "missing slash", repo: "invalid-repo-format"},
		{name: "too many slashes", repo: "org/repo/extra"},
		{name: "empty owner", repo: "/repo"},
		{name: "empty repo", repo: "org/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, []string{"list", tt.repo}, noTokenEnv())
			testutil.AssertCLIError(t, result, "invalid repository format")
		})
	}
}

func TestCLI_MissingToken(t *testing.T) {
	result := testutil.RunCLI(t, []string{"list", "dolthub/museum-stats"}, noTokenEnv())

	testutil.AssertCLIError(t, result, "DoltHub token not found")
	testutil.AssertExitCode(t, result, 2)
}

func TestCLI_HelpCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "main help",
			args: []string{"--help"},
			want: []string{"dolthub-pr", "list", "create", "merge", "comment", "query"},
		},
		{
			name: "list help",
			args: []string{"list", "--help"},
			want: []string{"--state", "--format"},
		},
		{
			name: "create help",
			args: []string{"create", "--help"},
			want: []string{"--title", "--from-branch", "--to-branch"},
		},
		{
			name: "comment help",
			args: []string{"comment", "--help"},
			want: []string{"add", "edit", "delete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, tt.args, nil)
			testutil.AssertCLISuccess(t, result)

			for _, fragment := range tt.want {
				if !strings.Contains(result.Stdout, fragment) {
					t.Errorf("Expected help output to contain %q, got: %s", fragment, result.Stdout)
				}
			}
		})
	}
}

func TestCLI_VersionFlag(t *testing.T) {
	result := testutil.RunCLI(t, []string{"--version"}, nil)

	testutil.AssertCLISuccess(t, result)
	if !strings.Contains(result.Stdout, "dolthub-pr") {
		t.Errorf("Expected binary name in version output, got: %s", result.Stdout)
	}
}

func TestCLI_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown flag",
			args:    []string{"list", "dolthub/museum-stats", "--unknown-flag"},
			wantErr: "unknown flag",
		},
		{
			name:    "invalid pull number",
			args:    []string{"show", "dolthub/museum-stats", "not-a-number"},
			wantErr: "invalid pull request number",
		},
		{
			name:    "invalid state filter",
			args:    []string{"list", "dolthub/museum-stats", "--state", "bogus"},
			wantErr: "invalid state",
		},
		{
			name:    "invalid output format",
			args:    []string{"list", "dolthub/museum-stats", "--format", "xml"},
			wantErr: "invalid output format",
		},
		{
			name:    "missing arguments",
			args:    []string{"show", "dolthub/museum-stats"},
			wantErr: "accepts 2 arg",
		},
		{
			name:    "too many arguments",
			args:    []string{"list", "dolthub/museum-stats", "extra"},
			wantErr: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, tt.args, noTokenEnv())
			testutil.AssertCLIError(t, result, tt.wantErr)
		})
	}
}

// TestCLI_ExitCodes verifies that the CLI returns appropriate exit codes
func TestCLI_ExitCodes(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantExitCode int
	}{
		{
			name:         "missing token",
			args:         []string{"list", "dolthub/museum-stats"},
			wantExitCode: 2,
		},
		{
			name:         "invalid repo format",
			args:         []string{"list", "invalid"},
			wantExitCode: 1,
		},
		{
			name:         "help command",
			args:         []string{"--help"},
			wantExitCode: 0,
		},
		{
			name:         "version flag",
			args:         []string{"--version"},
			wantExitCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, tt.args, noTokenEnv())
			testutil.AssertExitCode(t, result, tt.wantExitCode)
		})
	}
}
