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

import "time"

// PullState is the lifecycle state of a pull request. The values are
// case-sensitive on the wire; use the constants below rather than
// hand-built strings.
type PullState string

const (
	StateOpen   PullState = "Open"
	StateClosed PullState = "Closed"
	StateMerged PullState = "Merged"
)

// BranchRef names a branch in a specific repository.
type BranchRef struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// CommitRef names a commit in a specific repository.
type CommitRef struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	CommitID string `json:"commit_id"`
}

// PullRequest is the full detail view of a single pull request.
type PullRequest struct {
	// ID is the pull request number, unique within the destination
	// repository.
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       PullState `json:"state"`

	// Creator is the username of the account that opened the pull
	// request.
	Creator string `json:"creator"`

	// Fork reports whether the source branch lives in a fork of the
	// destination repository.
	Fork bool `json:"fork"`

	Source      BranchRef `json:"source"`
	Destination BranchRef `json:"destination"`
}

// PullRequestSummary is the list view of a pull request. The list API
// returns a different field set than the detail API; in particular only
// the list view carries the creation time.
type PullRequestSummary struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       PullState `json:"state"`
	Creator     string    `json:"creator"`
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	CreatedAt   time.Time `json:"created_at"`
}

// Comment is a comment on a pull request.
type Comment struct {
	// ID is the comment's resource path, e.g.
	// "repositoryOwners/acme/repositories/inventory/pulls/4/comments/<uuid>".
	// It is the handle UpdateComment and DeleteComment take.
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangeLogKind discriminates the entry types in a pull request's change
// log.
type ChangeLogKind string

const (
	ChangeLogComment ChangeLogKind = "Comment"
	ChangeLogCommit  ChangeLogKind = "Commit"
	ChangeLogSummary ChangeLogKind = "Summary"
	ChangeLogLog     ChangeLogKind = "Log"
)

// ChangeLogEntry is one event in a pull request's change log. The log is
// heterogeneous: comments, pushed commits, summary updates, and state
// transitions all appear in one chronological stream. Kind reports which
// variant an entry is; fields that do not apply to that variant are left
// zero. Entries with a Kind outside the defined constants are new server
// variants and carry only the shared fields.
type ChangeLogEntry struct {
	// ID is the entry's resource path. For comment entries it is the
	// handle accepted by UpdateComment and DeleteComment.
	ID        string        `json:"id"`
	Kind      ChangeLogKind `json:"kind"`
	CreatedAt time.Time     `json:"created_at"`

	// User is the account responsible for the event: the comment
	// author for comments, the pushing user for commits.
	User string `json:"user"`

	// Message is the comment body for comments and the commit message
	// for commits.
	Message string `json:"message,omitempty"`

	// UpdatedAt is set only on comment entries.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// CommitID and ParentCommitID are set only on commit entries.
	CommitID       string `json:"commit_id,omitempty"`
	ParentCommitID string `json:"parent_commit_id,omitempty"`

	// NumCommits is set only on summary entries.
	NumCommits int `json:"num_commits,omitempty"`

	// Activity is set only on log entries, e.g. "opened" or "merged".
	Activity string `json:"activity,omitempty"`
}

// Commit is one commit on a pull request's source branch.
type Commit struct {
	ID          string    `json:"id"`
	CommitID    string    `json:"commit_id"`
	Message     string    `json:"message"`
	CommittedAt time.Time `json:"committed_at"`
	Committer   string    `json:"committer"`
}

// MergeState describes the commits the server would use to merge a pull
// request: the tips of both branches and their merge base.
type MergeState struct {
	PremergeFromCommit string `json:"premerge_from_commit"`
	PremergeToCommit   string `json:"premerge_to_commit"`
	MergeBaseCommit    string `json:"merge_base_commit"`
}

// PullCommits is the commit listing of a pull request together with its
// merge state.
type PullCommits struct {
	Commits    []Commit   `json:"commits"`
	MergeState MergeState `json:"merge_state"`
}

// RowStats counts row-level differences between two commits.
type RowStats struct {
	Count      int `json:"count"`
	Modified   int `json:"modified"`
	Unmodified int `json:"unmodified"`
	Added      int `json:"added"`
	Deleted    int `json:"deleted"`
}

// CellStats counts cell-level differences between two commits.
type CellStats struct {
	Count      int `json:"count"`
	Modified   int `json:"modified"`
	Unmodified int `json:"unmodified"`
}

// DiffSummary aggregates the row and cell changes between two commits.
type DiffSummary struct {
	Rows  RowStats  `json:"rows"`
	Cells CellStats `json:"cells"`
}

// CreatePullRequestOptions configures CreatePullRequest. FromBranch and
// ToBranch are required. FromOwner and FromRepo identify the fork holding
// the source branch; when empty the source branch is taken from the
// destination repository itself.
type CreatePullRequestOptions struct {
	FromBranch string
	ToBranch   string

	Title       string
	Description string

	FromOwner string
	FromRepo  string
}

// ListPullRequestsOptions configures ListPullRequests. A zero State
// returns pull requests in every state.
type ListPullRequestsOptions struct {
	State PullState
}

// UpdatePullRequestOptions carries the fields UpdatePullRequest should
// change. Nil fields are left untouched on the server. At least one field
// must be non-nil.
type UpdatePullRequestOptions struct {
	Title       *string
	Description *string
	State       *PullState
}
