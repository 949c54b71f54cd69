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
	"strconv"
	"strings"
)

// GetPullRequest implements Client.GetPullRequest.
func (c *HTTPClient) GetPullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error) {
	raw, err := c.do(ctx, opPullDetails, queryPullDetails, map[string]any{
		"ownerName": owner,
		"repoName":  repo,
		"pullId":    strconv.Itoa(id),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			Pull *wirePull `json:"pull"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", opPullDetails, err)
	}
	if resp.Data.Pull == nil {
		return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
	}

	return resp.Data.Pull.toPullRequest()
}

// ListPullRequests implements Client.ListPullRequests. It walks every
// page; the state filter is applied client-side because the list query
// has no state argument.
func (c *HTTPClient) ListPullRequests(ctx context.Context, owner, repo string, opts ListPullRequestsOptions) ([]PullRequestSummary, error) {
	variables := map[string]any{
		"ownerName": owner,
		"repoName":  repo,
	}

	out := make([]PullRequestSummary, 0)
	for {
		raw, err := c.do(ctx, opPullList, queryPullList, variables)
		if err != nil {
			return nil, err
		}

		var resp struct {
			Data struct {
				Pulls *struct {
					List          []wirePullListItem `json:"list"`
					NextPageToken string             `json:"nextPageToken"`
				} `json:"pulls"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", opPullList, err)
		}
		if resp.Data.Pulls == nil {
			return nil, fmt.Errorf("repository %s/%s: %w", owner, repo, ErrNotFound)
		}

		sent, _ := variables["pageToken"].(string)
		next := strings.TrimSpace(resp.Data.Pulls.NextPageToken)
		if sent != "" && next == sent {
			// The server echoed the page token back, so this is the
			// same page again.
			break
		}

		for _, item := range resp.Data.Pulls.List {
			summary, err := item.toSummary()
			if err != nil {
				return nil, fmt.Errorf("decode %s response: %w", opPullList, err)
			}
			if opts.State != "" && summary.State != opts.State {
				continue
			}
			out = append(out, summary)
		}

		if next == "" {
			break
		}
		variables["pageToken"] = next
	}

	return out, nil
}

// CreatePullRequest implements Client.CreatePullRequest. The create
// mutation only returns the new pull request's number, so the full
// record is fetched afterwards.
func (c *HTTPClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePullRequestOptions) (*PullRequest, error) {
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

	raw, err := c.do(ctx, opCreatePull, mutationCreatePull, map[string]any{
		"title":               opts.Title,
		"description":         opts.Description,
		"fromBranchName":      opts.FromBranch,
		"toBranchName":        opts.ToBranch,
		"fromBranchOwnerName": fromOwner,
		"fromBranchRepoName":  fromRepo,
		"toBranchOwnerName":   owner,
		"toBranchRepoName":    repo,
		// The parent names track the destination repository.
		"parentOwnerName": owner,
		"parentRepoName":  repo,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			CreatePullWithForks *struct {
				ID     string `json:"_id"`
				PullID string `json:"pullId"`
			} `json:"createPullWithForks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", opCreatePull, err)
	}
	if resp.Data.CreatePullWithForks == nil {
		return nil, fmt.Errorf("decode %s response: missing createPullWithForks", opCreatePull)
	}

	id, err := strconv.Atoi(resp.Data.CreatePullWithForks.PullID)
	if err != nil {
		return nil, fmt.Errorf("parse pull id %q: %w", resp.Data.CreatePullWithForks.PullID, err)
	}

	return c.GetPullRequest(ctx, owner, repo, id)
}

// UpdatePullRequest implements Client.UpdatePullRequest. The update
// mutation overwrites every field, so fields the caller leaves nil are
// filled from the pull request's current values first.
func (c *HTTPClient) UpdatePullRequest(ctx context.Context, owner, repo string, id int, opts UpdatePullRequestOptions) (*PullRequest, error) {
	if opts.Title == nil && opts.Description == nil && opts.State == nil {
		return nil, fmt.Errorf("update pull request %s/%s#%d: %w", owner, repo, id, ErrNoUpdateFields)
	}

	title, description, state := opts.Title, opts.Description, opts.State

	// Setting state to Merged through the update mutation marks the
	// pull request merged without merging any data. Route it through a
	// real merge after the field update lands.
	shouldMerge := false
	if state != nil && *state == StateMerged {
		shouldMerge = true
		state = nil
	}

	if title == nil || description == nil || state == nil {
		current, err := c.GetPullRequest(ctx, owner, repo, id)
		if err != nil {
			return nil, err
		}
		if title == nil {
			title = &current.Title
		}
		if description == nil {
			description = &current.Description
		}
		if state == nil {
			s := current.State
			state = &s
		}
	}

	if _, err := c.do(ctx, opUpdatePull, mutationUpdatePull, map[string]any{
		"_id":         pullResourceID(owner, repo, id),
		"state":       string(*state),
		"title":       *title,
		"description": *description,
	}); err != nil {
		return nil, err
	}

	if shouldMerge {
		return c.MergePullRequest(ctx, owner, repo, id)
	}
	return c.GetPullRequest(ctx, owner, repo, id)
}

// MergePullRequest implements Client.MergePullRequest.
func (c *HTTPClient) MergePullRequest(ctx context.Context, owner, repo string, id int) (*PullRequest, error) {
	raw, err := c.do(ctx, opMergePull, mutationMergePull, map[string]any{
		"ownerName": owner,
		"repoName":  repo,
		"pullId":    strconv.Itoa(id),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			MergePull *wirePull `json:"mergePull"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", opMergePull, err)
	}
	if resp.Data.MergePull == nil {
		return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
	}

	return resp.Data.MergePull.toPullRequest()
}

// ListPullCommits implements Client.ListPullCommits.
func (c *HTTPClient) ListPullCommits(ctx context.Context, owner, repo string, id int) (*PullCommits, error) {
	variables := map[string]any{
		"ownerName": owner,
		"repoName":  repo,
		"pullId":    strconv.Itoa(id),
	}

	out := &PullCommits{Commits: make([]Commit, 0)}
	first := true
	for {
		raw, err := c.do(ctx, opPullCommits, queryPullCommits, variables)
		if err != nil {
			return nil, err
		}

		var resp struct {
			Data struct {
				Pull *struct {
					Summary struct {
						Commits struct {
							List          []wireCommit `json:"list"`
							NextPageToken string       `json:"nextPageToken"`
						} `json:"commits"`
						MergeState wireMergeState `json:"mergeState"`
					} `json:"summary"`
				} `json:"pull"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", opPullCommits, err)
		}
		if resp.Data.Pull == nil {
			return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
		}

		if first {
			out.MergeState = resp.Data.Pull.Summary.MergeState.toMergeState()
			first = false
		}

		sent, _ := variables["pageToken"].(string)
		next := strings.TrimSpace(resp.Data.Pull.Summary.Commits.NextPageToken)
		if sent != "" && next == sent {
			// The commits query does not declare $pageToken. A server
			// that ignores the variable serves the first page over and
			// over; an echoed token is the signal to stop.
			break
		}

		for _, wc := range resp.Data.Pull.Summary.Commits.List {
			out.Commits = append(out.Commits, wc.toCommit())
		}

		if next == "" {
			break
		}
		variables["pageToken"] = next
	}

	return out, nil
}
