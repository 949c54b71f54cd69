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

package dolthub

import (
	"context"
	"encoding/json"
)

// Client is the interface for DoltHub pull request operations. It is
// implemented by HTTPClient and can be mocked for testing.
type Client interface {
	// RawQuery sends an arbitrary GraphQL document with the given
	// variables and returns the raw response body exactly as the
	// server sent it, after the usual response validation. It is the
	// escape hatch for operations this package has no typed method
	// for.
	RawQuery(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)

	// CreatePullRequest opens a pull request against the
	// owner/repo repository and returns it as the server recorded it.
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePullRequestOptions) (*PullRequest, error)

	// ListPullRequests returns the repository's pull requests, newest
	// first, walking every page. A repository with no pull requests
	// yields an empty slice, not an error.
	ListPullRequests(ctx context.Context, owner, repo string, opts ListPullRequestsOptions) ([]PullRequestSummary, error)

	// GetPullRequest returns one pull request by number. A number the
	// repository has never issued fails with a *ServerError or
	// ErrNotFound depending on how the server reports it.
	GetPullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error)

	// UpdatePullRequest changes the given fields of a pull request,
	// leaving nil fields as they are. Setting State to StateMerged
	// updates the other fields first and then performs a real merge.
	// At least one field must be set.
	UpdatePullRequest(ctx context.Context, owner, repo string, id int, opts UpdatePullRequestOptions) (*PullRequest, error)

	// MergePullRequest merges a pull request and returns its merged
	// state. Merging an already-merged or closed pull request fails
	// with a *ServerError.
	MergePullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error)

	// ListChangeLog returns the chronological event log of a pull
	// request: comments, commits, summary updates, and state
	// transitions interleaved.
	ListChangeLog(ctx context.Context, owner, repo string, id int) ([]ChangeLogEntry, error)

	// AddComment posts a comment on a pull request and returns it,
	// including the id needed to update or delete it later.
	AddComment(ctx context.Context, owner, repo string, id int, body string) (*Comment, error)

	// UpdateComment replaces a comment's body. The commentID is the
	// Comment.ID returned by AddComment or found in the change log.
	UpdateComment(ctx context.Context, owner, repo, commentID, body string) (*Comment, error)

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, owner, repo, commentID string) error

	// DiffSummary returns row and cell change counts between two
	// commits, typically a pull request's branch tips.
	DiffSummary(ctx context.Context, source, destination CommitRef) (*DiffSummary, error)

	// ListPullCommits returns the commits a pull request would merge
	// together with the server's view of its merge state.
	ListPullCommits(ctx context.Context, owner, repo string, id int) (*PullCommits, error)
}
