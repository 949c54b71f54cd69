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
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// This file isolates the API's response shapes from the exported types.
// The API is unversioned, numbers arrive as strings, and timestamps are
// Unix milliseconds, so every field crosses through an explicit
// conversion here instead of decoding straight into exported structs.

// wirePull is the detail view of a pull request, shared by the detail
// query and the merge mutation.
type wirePull struct {
	ID                  string `json:"_id"`
	PullID              string `json:"pullId"`
	State               string `json:"state"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	FromBranchName      string `json:"fromBranchName"`
	FromBranchOwnerName string `json:"fromBranchOwnerName"`
	FromBranchRepoName  string `json:"fromBranchRepoName"`
	ToBranchName        string `json:"toBranchName"`
	ToBranchOwnerName   string `json:"toBranchOwnerName"`
	ToBranchRepoName    string `json:"toBranchRepoName"`
	CreatorName         string `json:"creatorName"`
	IsFork              bool   `json:"isFork"`
}

func (w *wirePull) toPullRequest() (*PullRequest, error) {
	id, err := strconv.Atoi(w.PullID)
	if err != nil {
		return nil, fmt.Errorf("parse pull id %q: %w", w.PullID, err)
	}
	return &PullRequest{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		State:       PullState(w.State),
		Creator:     w.CreatorName,
		Fork:        w.IsFork,
		Source: BranchRef{
			Owner:  w.FromBranchOwnerName,
			Repo:   w.FromBranchRepoName,
			Branch: w.FromBranchName,
		},
		Destination: BranchRef{
			Owner:  w.ToBranchOwnerName,
			Repo:   w.ToBranchRepoName,
			Branch: w.ToBranchName,
		},
	}, nil
}

// wirePullListItem is the list view of a pull request. Unlike the
// detail view it carries a creation timestamp and the repository name.
type wirePullListItem struct {
	ID          string `json:"_id"`
	CreatedAt   int64  `json:"createdAt"`
	OwnerName   string `json:"ownerName"`
	RepoName    string `json:"repoName"`
	PullID      string `json:"pullId"`
	CreatorName string `json:"creatorName"`
	Description string `json:"description"`
	State       string `json:"state"`
	Title       string `json:"title"`
}

func (w *wirePullListItem) toSummary() (PullRequestSummary, error) {
	id, err := strconv.Atoi(w.PullID)
	if err != nil {
		return PullRequestSummary{}, fmt.Errorf("parse pull id %q: %w", w.PullID, err)
	}
	return PullRequestSummary{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		State:       PullState(w.State),
		Creator:     w.CreatorName,
		Owner:       w.OwnerName,
		Repo:        w.RepoName,
		CreatedAt:   time.UnixMilli(w.CreatedAt),
	}, nil
}

// wirePullDetail is the superset of the change log's union members.
// Which fields are populated depends on Typename; the rest decode to
// zero values.
type wirePullDetail struct {
	Typename       string `json:"__typename"`
	ID             string `json:"_id"`
	CreatedAt      int64  `json:"createdAt"`
	UpdatedAt      int64  `json:"updatedAt"`
	AuthorName     string `json:"authorName"`
	Username       string `json:"username"`
	Comment        string `json:"comment"`
	Message        string `json:"message"`
	CommitID       string `json:"commitId"`
	ParentCommitID string `json:"parentCommitId"`
	NumCommits     int    `json:"numCommits"`
	Activity       string `json:"activity"`
}

var detailKinds = map[string]ChangeLogKind{
	"PullDetailComment": ChangeLogComment,
	"PullDetailCommit":  ChangeLogCommit,
	"PullDetailSummary": ChangeLogSummary,
	"PullDetailLog":     ChangeLogLog,
}

func (w *wirePullDetail) toEntry() ChangeLogEntry {
	entry := ChangeLogEntry{
		ID:        w.ID,
		CreatedAt: time.UnixMilli(w.CreatedAt),
	}

	kind, known := detailKinds[w.Typename]
	if !known {
		// A union member this package has never seen. Keep the shared
		// fields and surface the server's name so callers can skip or
		// inspect it.
		entry.Kind = ChangeLogKind(w.Typename)
		return entry
	}
	entry.Kind = kind

	switch kind {
	case ChangeLogComment:
		entry.User = w.AuthorName
		entry.Message = w.Comment
		updated := time.UnixMilli(w.UpdatedAt)
		entry.UpdatedAt = &updated
	case ChangeLogCommit:
		entry.User = w.Username
		entry.Message = w.Message
		entry.CommitID = w.CommitID
		entry.ParentCommitID = w.ParentCommitID
	case ChangeLogSummary:
		entry.User = w.Username
		entry.NumCommits = w.NumCommits
	case ChangeLogLog:
		entry.User = w.Username
		entry.Activity = w.Activity
	}

	return entry
}

// wireDiffSummary is the diff summary between two commits. The API has
// no cellsUnmodified field; it is derived in the converter.
type wireDiffSummary struct {
	RowsUnmodified int `json:"rowsUnmodified"`
	RowsAdded      int `json:"rowsAdded"`
	RowsDeleted    int `json:"rowsDeleted"`
	RowsModified   int `json:"rowsModified"`
	CellsModified  int `json:"cellsModified"`
	RowCount       int `json:"rowCount"`
	CellCount      int `json:"cellCount"`
}

func (w *wireDiffSummary) toDiffSummary() *DiffSummary {
	return &DiffSummary{
		Rows: RowStats{
			Count:      w.RowCount,
			Modified:   w.RowsModified,
			Unmodified: w.RowsUnmodified,
			Added:      w.RowsAdded,
			Deleted:    w.RowsDeleted,
		},
		Cells: CellStats{
			Count:      w.CellCount,
			Modified:   w.CellsModified,
			Unmodified: w.CellCount - w.CellsModified,
		},
	}
}

// wireCommit is one commit in the pull commits listing.
type wireCommit struct {
	ID          string `json:"_id"`
	CommitID    string `json:"commitId"`
	Message     string `json:"message"`
	CommittedAt int64  `json:"committedAt"`
	Committer   struct {
		DisplayName string `json:"displayName"`
	} `json:"committer"`
}

func (w *wireCommit) toCommit() Commit {
	return Commit{
		ID:          w.ID,
		CommitID:    w.CommitID,
		Message:     w.Message,
		CommittedAt: time.UnixMilli(w.CommittedAt),
		Committer:   w.Committer.DisplayName,
	}
}

// wireMergeState mirrors the mergeState block of the pull commits
// listing.
type wireMergeState struct {
	PremergeFromCommit string `json:"premergeFromCommit"`
	PremergeToCommit   string `json:"premergeToCommit"`
	MergeBaseCommit    string `json:"mergeBaseCommit"`
}

func (w *wireMergeState) toMergeState() MergeState {
	return MergeState{
		PremergeFromCommit: w.PremergeFromCommit,
		PremergeToCommit:   w.PremergeToCommit,
		MergeBaseCommit:    w.MergeBaseCommit,
	}
}

// graphqlMessages extracts the message strings from a raw errors list.
// Anything that does not decode as a list of objects with a message
// yields nil rather than an error; the caller already knows the
// request failed.
func graphqlMessages(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var list []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}
