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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// PullStoreServer is a stateful double of the DoltHub GraphQL API. It
// keeps pull requests, their change logs, and comments in memory so
// multi-step CLI workflows run against one server the way they would
// against dolthub.com: a created pull request becomes listable,
// commenting adds a change log entry, merging moves state.
//
// Like the live API it answers failures with status 200 and a GraphQL
// errors list, and it authenticates every request by the dolthubToken
// cookie.
type PullStoreServer struct {
	*httptest.Server

	// PageSize bounds each page of the pulls listing. Zero returns
	// everything in one page.
	PageSize int

	mu      sync.Mutex
	token   string
	pulls   map[int]*storedPull
	order   []int
	nextID  int
	nextUID int
	history []RecordedRequest
}

// RecordedRequest is one GraphQL request the server received.
type RecordedRequest struct {
	Operation string
	Variables map[string]interface{}
}

// storedPull is the server-side state of one pull request. details
// holds wire-shaped change log entries in chronological order.
type storedPull struct {
	id          int
	owner       string
	repo        string
	title       string
	description string
	state       string
	creator     string
	fromOwner   string
	fromRepo    string
	fromBranch  string
	toBranch    string
	createdAt   time.Time
	details     []map[string]interface{}
}

func (p *storedPull) path() string {
	return fmt.Sprintf("repositoryOwners/%s/repositories/%s/pulls/%d", p.owner, p.repo, p.id)
}

// NewPullStoreServer creates a stateful mock that accepts the given
// token and starts with an empty store.
func NewPullStoreServer(t *testing.T, token string) *PullStoreServer {
	t.Helper()

	store := &PullStoreServer{
		token:  token,
		pulls:  make(map[int]*storedPull),
		nextID: 1,
	}
	store.Server = httptest.NewServer(http.HandlerFunc(store.handle))
	t.Cleanup(store.Server.Close)
	return store
}

// SeedPull adds a pull request directly to the store, bypassing the
// API, and returns its number.
func (s *PullStoreServer) SeedPull(owner, repo, title, state string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	pull := &storedPull{
		id:          id,
		owner:       owner,
		repo:        repo,
		title:       title,
		description: fmt.Sprintf("Seeded pull request %d", id),
		state:       state,
		creator:     fmt.Sprintf("user%d", id),
		fromOwner:   owner,
		fromRepo:    repo,
		fromBranch:  fmt.Sprintf("change-%d", id),
		toBranch:    "main",
		createdAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, id),
	}
	pull.details = append(pull.details, s.logEntry(pull, "opened", pull.createdAt))
	if state == "Merged" {
		pull.details = append(pull.details, s.logEntry(pull, "merged", pull.createdAt.Add(time.Hour)))
	}

	s.pulls[id] = pull
	s.order = append(s.order, id)
	return id
}

// History returns a copy of every request the server received, in order.
func (s *PullStoreServer) History() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.history...)
}

// CountOperation returns how many requests named the given operation.
func (s *PullStoreServer) CountOperation(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, req := range s.history {
		if req.Operation == name {
			count++
		}
	}
	return count
}

// PullState returns the stored state of a pull request, or "" when the
// pull request does not exist.
func (s *PullStoreServer) PullState(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pull, ok := s.pulls[id]
	if !ok {
		return ""
	}
	return pull.state
}

func (s *PullStoreServer) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGraphQL(w, errorResponse("error parsing request body"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, RecordedRequest{Operation: req.OperationName, Variables: req.Variables})

	if r.Header.Get("Cookie") != "dolthubToken="+s.token {
		writeGraphQL(w, errorResponse("You must be logged in."))
		return
	}

	switch req.OperationName {
	case "PullsForRepo":
		writeGraphQL(w, s.listPulls(req.Variables))
	case "PullForPullDetailsQuery":
		writeGraphQL(w, s.pullDetail(req.Variables))
	case "CreatePullRequestWithForks":
		writeGraphQL(w, s.createPull(req.Variables))
	case "UpdatePullInfo":
		writeGraphQL(w, s.updatePull(req.Variables))
	case "MergePull":
		writeGraphQL(w, s.mergePull(req.Variables))
	case "PullDetailsForPullDetails":
		writeGraphQL(w, s.changeLog(req.Variables))
	case "CreatePullComment":
		writeGraphQL(w, s.createComment(req.Variables))
	case "UpdatePullComment":
		writeGraphQL(w, s.updateComment(req.Variables))
	case "DeletePullComment":
		writeGraphQL(w, s.deleteComment(req.Variables))
	case "PullCommitsForDiffSelector":
		writeGraphQL(w, s.pullCommits(req.Variables))
	case "DiffSummaryAsync":
		writeGraphQL(w, s.diffSummary())
	default:
		writeGraphQL(w, errorResponse(fmt.Sprintf("unknown operation %q", req.OperationName)))
	}
}

func (s *PullStoreServer) listPulls(vars map[string]interface{}) map[string]interface{} {
	// Newest first, like the live API.
	ids := make([]int, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		ids = append(ids, s.order[i])
	}

	start := 0
	if token := stringVar(vars, "pageToken"); token != "" {
		fmt.Sscanf(token, "page-%d", &start)
	}

	end := len(ids)
	nextToken := ""
	if s.PageSize > 0 && start+s.PageSize < len(ids) {
		end = start + s.PageSize
		nextToken = fmt.Sprintf("page-%d", end)
	}
	if start > len(ids) {
		start = len(ids)
	}

	list := make([]interface{}, 0, end-start)
	for _, id := range ids[start:end] {
		pull := s.pulls[id]
		list = append(list, map[string]interface{}{
			"__typename":  "Pull",
			"_id":         pull.path(),
			"createdAt":   pull.createdAt.UnixMilli(),
			"ownerName":   pull.owner,
			"repoName":    pull.repo,
			"pullId":      strconv.Itoa(pull.id),
			"creatorName": pull.creator,
			"description": pull.description,
			"state":       pull.state,
			"title":       pull.title,
		})
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"pulls": map[string]interface{}{
				"__typename":    "PullList",
				"list":          list,
				"nextPageToken": nextToken,
			},
		},
	}
}

func (s *PullStoreServer) pullDetail(vars map[string]interface{}) map[string]interface{} {
	pull := s.pullByVarID(vars)
	if pull == nil {
		return map[string]interface{}{
			"data": map[string]interface{}{"pull": nil},
		}
	}
	return map[string]interface{}{
		"data": map[string]interface{}{"pull": s.detailView(pull)},
	}
}

func (s *PullStoreServer) createPull(vars map[string]interface{}) map[string]interface{} {
	id := s.nextID
	s.nextID++

	pull := &storedPull{
		id:          id,
		owner:       stringVar(vars, "toBranchOwnerName"),
		repo:        stringVar(vars, "toBranchRepoName"),
		title:       stringVar(vars, "title"),
		description: stringVar(vars, "description"),
		state:       "Open",
		creator:     "test-user",
		fromOwner:   stringVar(vars, "fromBranchOwnerName"),
		fromRepo:    stringVar(vars, "fromBranchRepoName"),
		fromBranch:  stringVar(vars, "fromBranchName"),
		toBranch:    stringVar(vars, "toBranchName"),
		createdAt:   time.Now(),
	}
	pull.details = append(pull.details, s.logEntry(pull, "opened", pull.createdAt))

	s.pulls[id] = pull
	s.order = append(s.order, id)

	return map[string]interface{}{
		"data": map[string]interface{}{
			"createPullWithForks": map[string]interface{}{
				"__typename": "Pull",
				"_id":        pull.path(),
				"pullId":     strconv.Itoa(id),
			},
		},
	}
}

func (s *PullStoreServer) updatePull(vars map[string]interface{}) map[string]interface{} {
	pull := s.pullByPath(stringVar(vars, "_id"))
	if pull == nil {
		return errorResponse("error updating pull: pull not found")
	}

	pull.title = stringVar(vars, "title")
	pull.description = stringVar(vars, "description")
	pull.state = stringVar(vars, "state")

	return map[string]interface{}{
		"data": map[string]interface{}{
			"updatePull": map[string]interface{}{
				"__typename": "Pull",
				"_id":        pull.path(),
			},
		},
	}
}

func (s *PullStoreServer) mergePull(vars map[string]interface{}) map[string]interface{} {
	pull := s.pullByVarID(vars)
	if pull == nil {
		return errorResponse("error merging pull: pull not found")
	}
	switch pull.state {
	case "Merged":
		return errorResponse("error merging pull: pull has already been merged")
	case "Closed":
		return errorResponse("error merging pull: pull must be open")
	}

	pull.state = "Merged"
	pull.details = append(pull.details, s.logEntry(pull, "merged", time.Now()))

	return map[string]interface{}{
		"data": map[string]interface{}{
			"mergePull": s.detailView(pull),
		},
	}
}

func (s *PullStoreServer) changeLog(vars map[string]interface{}) map[string]interface{} {
	pull := s.pullByVarID(vars)
	if pull == nil {
		return map[string]interface{}{
			"data": map[string]interface{}{"pull": nil},
		}
	}

	details := make([]interface{}, 0, len(pull.details))
	for _, detail := range pull.details {
		details = append(details, detail)
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"pull": map[string]interface{}{
				"__typename": "Pull",
				"_id":        pull.path(),
				"details":    details,
			},
		},
	}
}

func (s *PullStoreServer) createComment(vars map[string]interface{}) map[string]interface{} {
	id, err := strconv.Atoi(stringVar(vars, "parentId"))
	if err != nil {
		return errorResponse("error creating comment: invalid pull id")
	}
	pull, ok := s.pulls[id]
	if !ok {
		return errorResponse("error creating comment: pull not found")
	}

	s.nextUID++
	now := time.Now()
	commentID := fmt.Sprintf("%s/comments/c0ffee00-0000-0000-0000-%012d", pull.path(), s.nextUID)
	pull.details = append(pull.details, map[string]interface{}{
		"__typename": "PullDetailComment",
		"_id":        commentID,
		"createdAt":  now.UnixMilli(),
		"updatedAt":  now.UnixMilli(),
		"authorName": "test-user",
		"comment":    stringVar(vars, "comment"),
	})

	return map[string]interface{}{
		"data": map[string]interface{}{
			"createComment": map[string]interface{}{
				"__typename": "Comment",
				"_id":        commentID,
			},
		},
	}
}

func (s *PullStoreServer) updateComment(vars map[string]interface{}) map[string]interface{} {
	commentID := stringVar(vars, "_id")
	detail := s.commentByID(commentID)
	if detail == nil {
		return errorResponse("error updating comment: comment not found")
	}

	detail["comment"] = stringVar(vars, "comment")
	detail["updatedAt"] = time.Now().UnixMilli()

	return map[string]interface{}{
		"data": map[string]interface{}{
			"updateComment": map[string]interface{}{
				"__typename": "Comment",
				"_id":        commentID,
			},
		},
	}
}

func (s *PullStoreServer) deleteComment(vars map[string]interface{}) map[string]interface{} {
	commentID := stringVar(vars, "_id")
	for _, pull := range s.pulls {
		for i, detail := range pull.details {
			if detail["_id"] == commentID && detail["__typename"] == "PullDetailComment" {
				pull.details = append(pull.details[:i], pull.details[i+1:]...)
				return map[string]interface{}{
					"data": map[string]interface{}{
						"deleteComment": map[string]interface{}{
							"__typename": "Comment",
							"_id":        commentID,
						},
					},
				}
			}
		}
	}
	return errorResponse("error deleting comment: comment not found")
}

func (s *PullStoreServer) pullCommits(vars map[string]interface{}) map[string]interface{} {
	pull := s.pullByVarID(vars)
	if pull == nil {
		return map[string]interface{}{
			"data": map[string]interface{}{"pull": nil},
		}
	}

	from := fmt.Sprintf("f%031d", pull.id)
	to := fmt.Sprintf("t%031d", pull.id)
	base := fmt.Sprintf("b%031d", pull.id)

	commit := map[string]interface{}{
		"__typename":  "Commit",
		"_id":         fmt.Sprintf("repositories/%s/commits/%s", pull.repo, from),
		"commitId":    from,
		"message":     fmt.Sprintf("Changes for pull %d", pull.id),
		"committedAt": pull.createdAt.UnixMilli(),
		"committer": map[string]interface{}{
			"__typename":  "User",
			"displayName": pull.creator,
		},
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"pull": map[string]interface{}{
				"__typename": "Pull",
				"_id":        pull.path(),
				"summary": map[string]interface{}{
					"__typename": "PullSummary",
					"_id":        pull.path() + "/summary",
					"commits": map[string]interface{}{
						"__typename":    "CommitList",
						"list":          []interface{}{commit},
						"nextPageToken": "",
					},
					"mergeState": map[string]interface{}{
						"__typename":         "MergeState",
						"premergeFromCommit": from,
						"premergeToCommit":   to,
						"mergeBaseCommit":    base,
					},
				},
			},
		},
	}
}

func (s *PullStoreServer) diffSummary() map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"diffSummaryAsync": map[string]interface{}{
				"__typename": "DiffSummary",
				"diffSummary": map[string]interface{}{
					"rowsUnmodified": 100,
					"rowsAdded":      12,
					"rowsDeleted":    3,
					"rowsModified":   5,
					"cellsModified":  25,
					"rowCount":       120,
					"cellCount":      600,
				},
			},
		},
	}
}

func (s *PullStoreServer) detailView(pull *storedPull) map[string]interface{} {
	fromOwner := pull.fromOwner
	fromRepo := pull.fromRepo
	if fromOwner == "" {
		fromOwner = pull.owner
	}
	if fromRepo == "" {
		fromRepo = pull.repo
	}
	return map[string]interface{}{
		"__typename":          "Pull",
		"_id":                 pull.path(),
		"pullId":              strconv.Itoa(pull.id),
		"state":               pull.state,
		"title":               pull.title,
		"description":         pull.description,
		"fromBranchName":      pull.fromBranch,
		"fromBranchOwnerName": fromOwner,
		"fromBranchRepoName":  fromRepo,
		"toBranchName":        pull.toBranch,
		"toBranchOwnerName":   pull.owner,
		"toBranchRepoName":    pull.repo,
		"creatorName":         pull.creator,
		"isFork":              fromOwner != pull.owner || fromRepo != pull.repo,
	}
}

func (s *PullStoreServer) logEntry(pull *storedPull, activity string, at time.Time) map[string]interface{} {
	s.nextUID++
	return map[string]interface{}{
		"__typename": "PullDetailLog",
		"_id":        fmt.Sprintf("%s/logs/%d", pull.path(), s.nextUID),
		"createdAt":  at.UnixMilli(),
		"username":   pull.creator,
		"activity":   activity,
	}
}

// pullByVarID finds a pull request by the pullId variable, which the
// API carries as a string.
func (s *PullStoreServer) pullByVarID(vars map[string]interface{}) *storedPull {
	id, err := strconv.Atoi(stringVar(vars, "pullId"))
	if err != nil {
		return nil
	}
	return s.pulls[id]
}

// pullByPath finds a pull request by its resource path.
func (s *PullStoreServer) pullByPath(path string) *storedPull {
	idx := strings.LastIndex(path, "/pulls/")
	if idx < 0 {
		return nil
	}
	id, err := strconv.Atoi(path[idx+len("/pulls/"):])
	if err != nil {
		return nil
	}
	return s.pulls[id]
}

// commentByID finds a comment change log entry across every pull.
func (s *PullStoreServer) commentByID(commentID string) map[string]interface{} {
	for _, pull := range s.pulls {
		for _, detail := range pull.details {
			if detail["_id"] == commentID && detail["__typename"] == "PullDetailComment" {
				return detail
			}
		}
	}
	return nil
}

func stringVar(vars map[string]interface{}, name string) string {
	value, _ := vars[name].(string)
	return value
}

func errorResponse(message string) map[string]interface{} {
	return map[string]interface{}{
		"data": nil,
		"errors": []map[string]interface{}{
			{"message": message},
		},
	}
}

func writeGraphQL(w http.ResponseWriter, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
