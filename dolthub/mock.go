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
	"fmt"
	"net/http"
	"time"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. It serves configured fixtures, applies mutations to them,
// and tracks calls for verification.
type MockClient struct {
	// Data to return
	Pulls     []PullRequest
	Summaries []PullRequestSummary
	Entries   []ChangeLogEntry
	Commits   *PullCommits
	Diff      *DiffSummary
	Raw       json.RawMessage

	// Error, when set, is returned by every method.
	Error error

	// Track calls for verification
	CallCount int
	LastOwner string
	LastRepo  string
	LastID    int
	LastBody  string

	nextID int
}

// Compile-time check that MockClient implements the Client interface.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock client with default test data.
func NewMockClient() *MockClient {
	return &MockClient{
		Pulls:     generateTestPulls(),
		Summaries: generateTestSummaries(),
		nextID:    100,
	}
}

// MockClientOption configures a MockClient.
type MockClientOption func(*MockClient)

// WithPulls replaces the mock's pull request fixtures.
func WithPulls(pulls []PullRequest) MockClientOption {
	return func(m *MockClient) {
		m.Pulls = pulls
	}
}

// WithChangeLog replaces the mock's change log fixtures.
func WithChangeLog(entries []ChangeLogEntry) MockClientOption {
	return func(m *MockClient) {
		m.Entries = entries
	}
}

// WithError makes every method return err.
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// NewMockClientWithOptions creates a mock client with options applied
// on top of the default test data.
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

// begin records a call and reports the configured failure, if any.
func (m *MockClient) begin(ctx context.Context, owner, repo string, id int) error {
	m.CallCount++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastID = id
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.Error
}

// RawQuery implements the Client interface.
func (m *MockClient) RawQuery(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	m.CallCount++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Raw != nil {
		return m.Raw, nil
	}
	return json.RawMessage(`{"data":{}}`), nil
}

// GetPullRequest implements the Client interface.
func (m *MockClient) GetPullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	for i := range m.Pulls {
		if m.Pulls[i].ID == id {
			pull := m.Pulls[i]
			return &pull, nil
		}
	}
	return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
}

// ListPullRequests implements the Client interface.
func (m *MockClient) ListPullRequests(ctx context.Context, owner, repo string, opts ListPullRequestsOptions) ([]PullRequestSummary, error) {
	if err := m.begin(ctx, owner, repo, 0); err != nil {
		return nil, err
	}
	out := make([]PullRequestSummary, 0, len(m.Summaries))
	for _, s := range m.Summaries {
		if opts.State != "" && s.State != opts.State {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// CreatePullRequest implements the Client interface.
func (m *MockClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePullRequestOptions) (*PullRequest, error) {
	if err := m.begin(ctx, owner, repo, 0); err != nil {
		return nil, err
	}
	if opts.FromBranch == "" || opts.ToBranch == "" {
		return nil, fmt.Errorf("create pull request: FromBranch and ToBranch are required")
	}

	fromOwner := opts.FromOwner
	if fromOwner == "" {
		fromOwner = owner
	}
	fromRepo := opts.FromRepo
	if fromRepo == "" {
		fromRepo = repo
	}

	m.nextID++
	pull := PullRequest{
		ID:          m.nextID,
		Title:       opts.Title,
		Description: opts.Description,
		State:       StateOpen,
		Creator:     "mock-user",
		Fork:        fromOwner != owner || fromRepo != repo,
		Source: BranchRef{
			Owner:  fromOwner,
			Repo:   fromRepo,
			Branch: opts.FromBranch,
		},
		Destination: BranchRef{
			Owner:  owner,
			Repo:   repo,
			Branch: opts.ToBranch,
		},
	}
	m.Pulls = append(m.Pulls, pull)
	return &pull, nil
}

// UpdatePullRequest implements the Client interface.
func (m *MockClient) UpdatePullRequest(ctx context.Context, owner, repo string, id int, opts UpdatePullRequestOptions) (*PullRequest, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	if opts.Title == nil && opts.Description == nil && opts.State == nil {
		return nil, fmt.Errorf("update pull request %s/%s#%d: %w", owner, repo, id, ErrNoUpdateFields)
	}
	for i := range m.Pulls {
		if m.Pulls[i].ID != id {
			continue
		}
		if opts.Title != nil {
			m.Pulls[i].Title = *opts.Title
		}
		if opts.Description != nil {
			m.Pulls[i].Description = *opts.Description
		}
		if opts.State != nil {
			m.Pulls[i].State = *opts.State
		}
		pull := m.Pulls[i]
		return &pull, nil
	}
	return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
}

// MergePullRequest implements the Client interface. Merging a pull
// request that is not open fails the way the live server does, with a
// *ServerError.
func (m *MockClient) MergePullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	for i := range m.Pulls {
		if m.Pulls[i].ID != id {
			continue
		}
		if m.Pulls[i].State != StateOpen {
			return nil, &ServerError{
				Op:         opMergePull,
				StatusCode: http.StatusOK,
				Messages:   []string{fmt.Sprintf("pull request is %s", m.Pulls[i].State)},
			}
		}
		m.Pulls[i].State = StateMerged
		pull := m.Pulls[i]
		return &pull, nil
	}
	return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
}

// ListChangeLog implements the Client interface.
func (m *MockClient) ListChangeLog(ctx context.Context, owner, repo string, id int) ([]ChangeLogEntry, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	out := make([]ChangeLogEntry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

// AddComment implements the Client interface.
func (m *MockClient) AddComment(ctx context.Context, owner, repo string, id int, body string) (*Comment, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	m.LastBody = body

	now := time.Now().UTC()
	entry := ChangeLogEntry{
		ID:        fmt.Sprintf("%s/comments/mock-%d", pullResourceID(owner, repo, id), len(m.Entries)),
		Kind:      ChangeLogComment,
		CreatedAt: now,
		UpdatedAt: &now,
		User:      "mock-user",
		Message:   body,
	}
	m.Entries = append(m.Entries, entry)
	return commentFromEntry(entry), nil
}

// UpdateComment implements the Client interface.
func (m *MockClient) UpdateComment(ctx context.Context, owner, repo, commentID, body string) (*Comment, error) {
	if err := m.begin(ctx, owner, repo, 0); err != nil {
		return nil, err
	}
	if _, err := parseCommentID(owner, repo, commentID); err != nil {
		return nil, err
	}
	m.LastBody = body

	for i := range m.Entries {
		if m.Entries[i].Kind != ChangeLogComment || m.Entries[i].ID != commentID {
			continue
		}
		now := time.Now().UTC()
		m.Entries[i].Message = body
		m.Entries[i].UpdatedAt = &now
		return commentFromEntry(m.Entries[i]), nil
	}
	return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
}

// DeleteComment implements the Client interface.
func (m *MockClient) DeleteComment(ctx context.Context, owner, repo, commentID string) error {
	if err := m.begin(ctx, owner, repo, 0); err != nil {
		return err
	}
	if _, err := parseCommentID(owner, repo, commentID); err != nil {
		return err
	}
	for i := range m.Entries {
		if m.Entries[i].Kind == ChangeLogComment && m.Entries[i].ID == commentID {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
}

// DiffSummary implements the Client interface.
func (m *MockClient) DiffSummary(ctx context.Context, source, destination CommitRef) (*DiffSummary, error) {
	if err := m.begin(ctx, source.Owner, source.Repo, 0); err != nil {
		return nil, err
	}
	if m.Diff != nil {
		diff := *m.Diff
		return &diff, nil
	}
	return &DiffSummary{}, nil
}

// ListPullCommits implements the Client interface.
func (m *MockClient) ListPullCommits(ctx context.Context, owner, repo string, id int) (*PullCommits, error) {
	if err := m.begin(ctx, owner, repo, id); err != nil {
		return nil, err
	}
	if m.Commits != nil {
		commits := *m.Commits
		return &commits, nil
	}
	return &PullCommits{Commits: []Commit{}}, nil
}

// generateTestPulls creates sample pull request data for testing.
func generateTestPulls() []PullRequest {
	return []PullRequest{
		{
			ID:          1,
			Title:       "Add september attendance figures",
			Description: "Backfills the attendance table for September.",
			State:       StateOpen,
			Creator:     "alice",
			Source:      BranchRef{Owner: "alice", Repo: "museum-stats", Branch: "september-data"},
			Destination: BranchRef{Owner: "dolthub", Repo: "museum-stats", Branch: "main"},
			Fork:        true,
		},
		{
			ID:          2,
			Title:       "Normalize country codes",
			Description: "",
			State:       StateMerged,
			Creator:     "bob",
			Source:      BranchRef{Owner: "dolthub", Repo: "museum-stats", Branch: "country-codes"},
			Destination: BranchRef{Owner: "dolthub", Repo: "museum-stats", Branch: "main"},
		},
		{
			ID:          3,
			Title:       "Drop duplicate rows",
			Description: "Removes rows duplicated by the last import.",
			State:       StateClosed,
			Creator:     "carol",
			Source:      BranchRef{Owner: "dolthub", Repo: "museum-stats", Branch: "dedupe"},
			Destination: BranchRef{Owner: "dolthub", Repo: "museum-stats", Branch: "main"},
		},
	}
}

// generateTestSummaries creates sample list data matching
// generateTestPulls.
func generateTestSummaries() []PullRequestSummary {
	now := time.Now().UTC()
	return []PullRequestSummary{
		{
			ID:        1,
			Title:     "Add september attendance figures",
			State:     StateOpen,
			Creator:   "alice",
			Owner:     "dolthub",
			Repo:      "museum-stats",
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        2,
			Title:     "Normalize country codes",
			State:     StateMerged,
			Creator:   "bob",
			Owner:     "dolthub",
			Repo:      "museum-stats",
			CreatedAt: now.Add(-7 * 24 * time.Hour),
		},
		{
			ID:        3,
			Title:     "Drop duplicate rows",
			State:     StateClosed,
			Creator:   "carol",
			Owner:     "dolthub",
			Repo:      "museum-stats",
			CreatedAt: now.Add(-14 * 24 * time.Hour),
		},
	}
}
