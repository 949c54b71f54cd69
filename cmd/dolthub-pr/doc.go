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

// Package main implements the dolthub-pr command-line interface.
// This tool manages pull requests on DoltHub data repositories through
// the same GraphQL API the dolthub.com web application uses.
//
// The CLI supports:
//   - Listing, showing, creating, updating, and merging pull requests
//   - Reading the change log of a pull request (comments, commits, merges)
//   - Adding, editing, and deleting comments
//   - Row and cell level diff summaries for a pull request
//   - Sending raw GraphQL documents for anything not covered above
//   - DoltHub token authentication via flag, environment variable, or file
//   - Machine-readable NDJSON/JSON output and a colored table view
//
// Usage:
//
//	dolthub-pr <command> <owner>/<repo> [flags]
//
// Example:
//
//	export DOLTHUB_TOKEN=your_token
//	dolthub-pr list dolthub/us-jails --state open
//	dolthub-pr merge dolthub/us-jails 4
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
