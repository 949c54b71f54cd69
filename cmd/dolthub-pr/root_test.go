package main

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/sirseerhq/dolthub-pr/dolthub"
	"github.com/sirseerhq/dolthub-pr/internal/config"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			input:     "dolthub/us-jails",
			wantOwner: "dolthub",
			wantRepo:  "us-jails",
			wantErr:   false,
		},
		{
			input:     "alice/museum-stats",
			wantOwner: "alice",
			wantRepo:  "museum-stats",
			wantErr:   false,
		},
		{
			input:   "invalid",
			wantErr: true,
		},
		{
			input:   "too/many/slashes",
			wantErr: true,
		},
		{
			input:   "/repo",
			wantErr: true,
		},
		{
			input:   "owner/",
			wantErr: true,
		},
		{
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		owner, repo, err := parseRepository(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			if owner != tt.wantOwner {
				t.Errorf("parseRepository(%q) owner = %q, want %q", tt.input, owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) repo = %q, want %q", tt.input, repo, tt.wantRepo)
			}
		}
	}
}

func TestParsePullID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"1381", 1381, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePullID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePullID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePullID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseStateFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    dolthub.PullState
		wantErr bool
	}{
		{"all", "", false},
		{"", "", false},
		{"open", dolthub.StateOpen, false},
		{"closed", dolthub.StateClosed, false},
		{"merged", dolthub.StateMerged, false},
		{"MERGED", dolthub.StateMerged, false},
		{"draft", "", true},
	}

	for _, tt := range tests {
		got, err := parseStateFilter(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseStateFilter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseStateFilter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "general error",
			err:      os.ErrClosed,
			wantCode: 1,
		},
		{
			name:     "credential misconfiguration",
			err:      dolthub.ErrCredentialSource,
			wantCode: 2,
		},
		{
			name:     "auth rejection",
			err:      &dolthub.ServerError{Op: "PullsForRepo", StatusCode: 401},
			wantCode: 2,
		},
		{
			name:     "missing pull request",
			err:      &dolthub.ServerError{Op: "PullForPullDetailsQuery", StatusCode: 200, Messages: []string{"error getting pull"}},
			wantCode: 2,
		},
		{
			name: "upstream timeout is not a network failure",
			err: &dolthub.ServerError{
				Op:         "PullsForRepo",
				StatusCode: 200,
				Messages:   []string{"upstream request timeout"},
			},
			wantCode: 1,
		},
		{
			name:     "network failure",
			err:      &url.Error{Op: "Post", URL: "https://www.dolthub.com/graphql", Err: errors.New("dial tcp: connection refused")},
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestClientConfigPrecedence(t *testing.T) {
	os.Setenv("TEST_DOLTHUB_TOKEN", "env-token")
	defer os.Unsetenv("TEST_DOLTHUB_TOKEN")

	tests := []struct {
		name          string
		opts          globalOptions
		cfg           config.APIConfig
		wantToken     string
		wantTokenFile string
	}{
		{
			name:      "token flag wins over env",
			opts:      globalOptions{token: "flag-token"},
			cfg:       config.APIConfig{TokenEnv: "TEST_DOLTHUB_TOKEN"},
			wantToken: "flag-token",
		},
		{
			name:          "token-file flag wins over env",
			opts:          globalOptions{tokenFile: "/flag/token"},
			cfg:           config.APIConfig{TokenEnv: "TEST_DOLTHUB_TOKEN", TokenFile: "/config/token"},
			wantTokenFile: "/flag/token",
		},
		{
			name:      "env fallback",
			opts:      globalOptions{},
			cfg:       config.APIConfig{TokenEnv: "TEST_DOLTHUB_TOKEN", TokenFile: "/config/token"},
			wantToken: "env-token",
		},
		{
			name:          "config token file fallback",
			opts:          globalOptions{},
			cfg:           config.APIConfig{TokenEnv: "NONEXISTENT_TOKEN_VAR", TokenFile: "/config/token"},
			wantTokenFile: "/config/token",
		},
		{
			name:          "both flags stay set for the client to reject",
			opts:          globalOptions{token: "flag-token", tokenFile: "/flag/token"},
			cfg:           config.APIConfig{TokenEnv: "TEST_DOLTHUB_TOKEN"},
			wantToken:     "flag-token",
			wantTokenFile: "/flag/token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.API.TokenEnv = tt.cfg.TokenEnv
			cfg.API.TokenFile = tt.cfg.TokenFile

			c := tt.opts.clientConfig(cfg)
			if c.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", c.Token, tt.wantToken)
			}
			if c.TokenFile != tt.wantTokenFile {
				t.Errorf("TokenFile = %q, want %q", c.TokenFile, tt.wantTokenFile)
			}
		})
	}
}

func TestNewClientMissingToken(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.TokenEnv = "NONEXISTENT_TOKEN_VAR"
	cfg.API.TokenFile = ""

	opts := &globalOptions{}
	_, err := opts.newClient(cfg)
	if err == nil {
		t.Fatal("Expected error when no token source is configured")
	}
	if got := err.Error(); !strings.Contains(got, "DoltHub token not found") {
		t.Errorf("error = %q, want it to mention the missing token", got)
	}
}
