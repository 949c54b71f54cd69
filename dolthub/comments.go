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
	"fmt"
	"strconv"
)

// The update mutation requires an authorName variable but the server
// ignores its value; comments cannot be looked up individually to learn
// the real one.
const commentAuthorPlaceholder = "please-explain-authorName"

// AddComment implements Client.AddComment. The create mutation only
// returns the pull request's id, never the comment's, so the new
// comment is recovered from the change log: the newest comment entry
// whose body matches is ours.
func (c *HTTPClient) AddComment(ctx context.Context, owner, repo string, id int, body string) (*Comment, error) {
	if _, err := c.do(ctx, opCreateComment, mutationCreateComment, map[string]any{
		"ownerName": owner,
		"repoName":  repo,
		"parentId":  strconv.Itoa(id),
		"comment":   body,
	}); err != nil {
		return nil, err
	}

	entries, err := c.ListChangeLog(ctx, owner, repo, id)
	if err != nil {
		return nil, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == ChangeLogComment && entries[i].Message == body {
			return commentFromEntry(entries[i]), nil
		}
	}

	return nil, fmt.Errorf("comment created on %s/%s#%d but not found in change log", owner, repo, id)
}

// UpdateComment implements Client.UpdateComment. The commentID is
// validated before anything is sent, so a malformed id never mutates
// the server.
func (c *HTTPClient) UpdateComment(ctx context.Context, owner, repo, commentID, body string) (*Comment, error) {
	pullID, err := parseCommentID(owner, repo, commentID)
	if err != nil {
		return nil, err
	}

	if _, err := c.do(ctx, opUpdateComment, mutationUpdateComment, map[string]any{
		"_id":        commentID,
		"authorName": commentAuthorPlaceholder,
		"comment":    body,
	}); err != nil {
		return nil, err
	}

	entries, err := c.ListChangeLog(ctx, owner, repo, pullID)
	if err != nil {
		return nil, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == ChangeLogComment && entries[i].ID == commentID {
			return commentFromEntry(entries[i]), nil
		}
	}

	return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
}

// DeleteComment implements Client.DeleteComment.
func (c *HTTPClient) DeleteComment(ctx context.Context, owner, repo, commentID string) error {
	if _, err := parseCommentID(owner, repo, commentID); err != nil {
		return err
	}

	_, err := c.do(ctx, opDeleteComment, mutationDeleteComment, map[string]any{
		"_id": commentID,
	})
	return err
}

func commentFromEntry(entry ChangeLogEntry) *Comment {
	comment := &Comment{
		ID:        entry.ID,
		Author:    entry.User,
		Body:      entry.Message,
		CreatedAt: entry.CreatedAt,
	}
	if entry.UpdatedAt != nil {
		comment.UpdatedAt = *entry.UpdatedAt
	}
	return comment
}
