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

package testutil

import (
	"fmt"
	"time"
)

// PullBuilder provides a fluent API for creating wire-format pull
// requests. Build produces the detail view, BuildListItem the list view;
// the live API returns different field sets for the two, so the builder
// keeps one source of truth for both.
type PullBuilder struct {
	id          int
	title       string
	description string
	state       string
	creator     string
	owner       string
	repo        string
	fromOwner   string
	fromRepo    string
	fromBranch  string
	toBranch    string
	createdAt   time.Time
}

// NewPullBuilder creates a new pull request builder with defaults
func NewPullBuilder(id int) *PullBuilder {
	return &PullBuilder{
		id:          id,
		title:       fmt.Sprintf("Pull %d", id),
		description: fmt.Sprintf("This is the description of pull %d", id),
		state:       "Open",
		creator:     fmt.Sprintf("user%d", id),
		owner:       "dolthub",
		repo:        "museum-stats",
		fromBranch:  fmt.Sprintf("change-%d", id),
		toBranch:    "main",
		createdAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, id),
	}
}

// WithTitle sets the pull request title
func (b *PullBuilder) WithTitle(title string) *PullBuilder {
	b.title = title
	return b
}

// WithDescription sets the pull request description
func (b *PullBuilder) WithDescription(description string) *PullBuilder {
	b.description = description
	return b
}

// WithState sets the pull request state (Open, Closed, Merged)
func (b *PullBuilder) WithState(state string) *PullBuilder {
	b.state = state
	return b
}

// WithCreator sets the account that opened the pull request
func (b *PullBuilder) WithCreator(creator string) *PullBuilder {
	b.creator = creator
	return b
}

// WithRepository sets the destination repository
func (b *PullBuilder) WithRepository(owner, repo string) *PullBuilder {
	b.owner = owner
	b.repo = repo
	return b
}

// WithBranches sets the source and destination branch names
func (b *PullBuilder) WithBranches(from, to string) *PullBuilder {
	b.fromBranch = from
	b.toBranch = to
	return b
}

// WithFork marks the source branch as living in a fork
func (b *PullBuilder) WithFork(owner, repo string) *PullBuilder {
	b.fromOwner = owner
	b.fromRepo = repo
	return b
}

// WithCreatedAt sets when the pull request was opened
func (b *PullBuilder) WithCreatedAt(t time.Time) *PullBuilder {
	b.createdAt = t
	return b
}

// Path returns the pull request's resource path, the _id the API uses.
func (b *PullBuilder) Path() string {
	return fmt.Sprintf("repositoryOwners/%s/repositories/%s/pulls/%d", b.owner, b.repo, b.id)
}

// Build creates the detail view of the pull request
func (b *PullBuilder) Build() map[string]interface{} {
	fromOwner := b.fromOwner
	fromRepo := b.fromRepo
	isFork := fromOwner != ""
	if fromOwner == "" {
		fromOwner = b.owner
	}
	if fromRepo == "" {
		fromRepo = b.repo
	}

	return map[string]interface{}{
		"__typename":          "Pull",
		"_id":                 b.Path(),
		"pullId":              fmt.Sprintf("%d", b.id),
		"state":               b.state,
		"title":               b.title,
		"description":         b.description,
		"fromBranchName":      b.fromBranch,
		"fromBranchOwnerName": fromOwner,
		"fromBranchRepoName":  fromRepo,
		"toBranchName":        b.toBranch,
		"toBranchOwnerName":   b.owner,
		"toBranchRepoName":    b.repo,
		"creatorName":         b.creator,
		"isFork":              isFork,
	}
}

// BuildListItem creates the list view of the pull request
func (b *PullBuilder) BuildListItem() map[string]interface{} {
	return map[string]interface{}{
		"__typename":  "Pull",
		"_id":         b.Path(),
		"createdAt":   b.createdAt.UnixMilli(),
		"ownerName":   b.owner,
		"repoName":    b.repo,
		"pullId":      fmt.Sprintf("%d", b.id),
		"creatorName": b.creator,
		"description": b.description,
		"state":       b.state,
		"title":       b.title,
	}
}

// PullDetailResponse wraps the detail view of a pull request in the
// detail query's response envelope.
func PullDetailResponse(pull map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"pull": pull,
		},
	}
}

// ResponseBuilder builds GraphQL response envelopes for the pulls
// listing.
type ResponseBuilder struct {
	pulls     []map[string]interface{}
	nextToken string
	errors    []map[string]interface{}
}

// NewResponseBuilder creates a new response builder
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{
		pulls: []map[string]interface{}{},
	}
}

// WithPulls adds list-view pulls to the response
func (b *ResponseBuilder) WithPulls(pulls ...map[string]interface{}) *ResponseBuilder {
	b.pulls = append(b.pulls, pulls...)
	return b
}

// WithNextPageToken marks the page as partial
func (b *ResponseBuilder) WithNextPageToken(token string) *ResponseBuilder {
	b.nextToken = token
	return b
}

// WithError adds an error to the response
func (b *ResponseBuilder) WithError(message string) *ResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"message": message,
	})
	return b
}

// Build creates the GraphQL response
func (b *ResponseBuilder) Build() map[string]interface{} {
	if len(b.errors) > 0 {
		return map[string]interface{}{
			"data":   nil,
			"errors": b.errors,
		}
	}

	list := make([]interface{}, 0, len(b.pulls))
	for _, pull := range b.pulls {
		list = append(list, pull)
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"pulls": map[string]interface{}{
				"__typename":    "PullList",
				"list":          list,
				"nextPageToken": b.nextToken,
			},
		},
	}
}
