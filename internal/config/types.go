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

// Package config types define the configuration structures used throughout
// dolthub-pr. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "github.com/sirseerhq/dolthub-pr/dolthub"

// Config represents the complete configuration for dolthub-pr.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	API          APIConfig             `yaml:"api"`
	Defaults     DefaultsConfig        `yaml:"defaults"`
	Repositories map[string]RepoConfig `yaml:"repositories"`
}

// APIConfig contains DoltHub-specific settings including the GraphQL
// endpoint and authentication configuration. The token itself never lives
// in the file: TokenEnv names an environment variable that holds it, and
// TokenFile points at a file that does. TokenFile supports ~ and
// environment variable expansion.
type APIConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TokenEnv  string `yaml:"token_env"`
	TokenFile string `yaml:"token_file"`
	UserAgent string `yaml:"user_agent"`
}

// DefaultsConfig contains default settings that apply to all commands
// unless overridden by repository-specific settings or command-line flags.
// Branch is the destination branch used when opening a pull request
// without an explicit --to-branch.
type DefaultsConfig struct {
	OutputFormat string `yaml:"output_format"`
	Branch       string `yaml:"branch"`
}

// RepoConfig contains repository-specific overrides. This is useful when
// certain repositories integrate changes through a branch other than main,
// such as data repositories that stage imports on a release branch.
type RepoConfig struct {
	Branch string `yaml:"branch"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults target the public dolthub.com deployment but
// can be overridden for testing against a local stand-in.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: dolthub.DefaultEndpoint,
			TokenEnv: "DOLTHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			OutputFormat: "ndjson",
			Branch:       "main",
		},
		Repositories: make(map[string]RepoConfig),
	}
}
