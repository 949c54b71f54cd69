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

// Package dolthub is a client for the DoltHub GraphQL API, covering the
// pull request lifecycle: create, list, inspect, update, merge, comment,
// and read the change log of a pull request.
//
// The API is the same private endpoint the dolthub.com web application
// talks to. It is not a published interface, so this package pins the
// exact query documents the web application sends and treats any
// deviation in the response shape as a server error rather than guessing.
//
// Authentication uses a DoltHub session token delivered as a cookie. The
// token is supplied directly or read from a file:
//
//	client, err := dolthub.New(dolthub.Config{TokenFile: "~/.dolthub/token"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	prs, err := client.ListPullRequests(ctx, "dolthub", "museum-collections", dolthub.ListPullRequestsOptions{})
//
// Exactly one of Config.Token and Config.TokenFile must be set; supplying
// both or neither fails with ErrCredentialSource.
//
// All failures surface as one of three shapes: configuration errors
// (wrapping ErrCredentialSource or ErrNoUpdateFields), *ServerError for
// anything the API rejected or answered malformed, and plain transport
// errors from net/http passed through unwrapped. Requests are never
// retried; callers own their retry policy.
package dolthub
