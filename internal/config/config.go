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

// Package config provides configuration management for dolthub-pr with
// support for multiple configuration sources and a well-defined precedence
// order. Credentials stay out of the file: the file may name a token file
// path, and the token itself travels through an environment variable or a
// command-line flag.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Repository-specific configuration
//  4. Configuration file
//  5. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .dolthub-pr.yaml (current directory)
//   - .dolthub-pr.yml (current directory)
//   - ~/.dolthub/config.yaml
//   - ~/.dolthub/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on the token file path.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".dolthub-pr.yaml",
			".dolthub-pr.yml",
			filepath.Join(os.Getenv("HOME"), ".dolthub", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".dolthub", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.API.TokenFile = expandPath(cfg.API.TokenFile)

	return cfg, nil
}

// LoadConfigForRepo loads configuration and applies repository-specific
// overrides. This allows different settings for different repositories,
// such as a data repository whose pull requests merge into a release
// branch instead of main.
//
// The repo parameter should be in "owner/repo" format.
func LoadConfigForRepo(configPath, repo string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Apply repository-specific overrides if they exist
	if repoConfig, ok := cfg.Repositories[repo]; ok {
		if repoConfig.Branch != "" {
			cfg.Defaults.Branch = repoConfig.Branch
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("DOLTHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
	if tokenFile := os.Getenv("DOLTHUB_TOKEN_FILE"); tokenFile != "" {
		cfg.API.TokenFile = tokenFile
	}
	if format := os.Getenv("DOLTHUB_OUTPUT_FORMAT"); format != "" {
		cfg.Defaults.OutputFormat = format
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// GetDefaultBranch returns the effective destination branch for a
// repository, taking into account repository-specific overrides. If the
// repository has a specific branch configured, it returns that value.
// Otherwise, it returns the default branch.
func (c *Config) GetDefaultBranch(repo string) string {
	if repoConfig, ok := c.Repositories[repo]; ok && repoConfig.Branch != "" {
		return repoConfig.Branch
	}
	return c.Defaults.Branch
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	switch c.Defaults.OutputFormat {
	case "ndjson", "json", "table":
	default:
		return fmt.Errorf("invalid output format %q: must be ndjson, json, or table", c.Defaults.OutputFormat)
	}
	if c.API.Endpoint == "" {
		return fmt.Errorf("GraphQL endpoint cannot be empty")
	}
	if c.Defaults.Branch == "" {
		return fmt.Errorf("default branch cannot be empty")
	}
	return nil
}
