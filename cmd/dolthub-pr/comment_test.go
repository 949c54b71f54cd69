package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirseerhq/dolthub-pr/dolthub"
)

func TestRunCommentAdd(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runCommentAdd(context.Background(), client, "dolthub", "museum-stats", 1,
		"Attendance spike looks legitimate.", "ndjson", &stdout, &stderr)
	if err != nil {
		t.Fatalf("runCommentAdd failed: %v", err)
	}

	var comment dolthub.Comment
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &comment); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if comment.Body != "Attendance spike looks legitimate." {
		t.Errorf("Body = %q, want the comment text", comment.Body)
	}
	if comment.ID == "" {
		t.Error("comment ID is empty")
	}
	if !strings.Contains(stderr.String(), "Added comment to dolthub/museum-stats#1") {
		t.Errorf("stderr = %q, want confirmation", stderr.String())
	}
}

func TestRunCommentEdit(t *testing.T) {
	client := dolthub.NewMockClientWithOptions(dolthub.WithChangeLog(testChangeLogEntries()))
	commentID := "repositoryOwners/dolthub/repositories/museum-stats/pulls/1/comments/c0ffee00-0000-0000-0000-000000000001"
	var stdout, stderr bytes.Buffer

	err := runCommentEdit(context.Background(), client, "dolthub", "museum-stats", commentID,
		"Numbers reconciled against the door counters.", "ndjson", &stdout, &stderr)
	if err != nil {
		t.Fatalf("runCommentEdit failed: %v", err)
	}

	var comment dolthub.Comment
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &comment); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if comment.Body != "Numbers reconciled against the door counters." {
		t.Errorf("Body = %q, want the new text", comment.Body)
	}
	if comment.ID != commentID {
		t.Errorf("ID = %q, want %q", comment.ID, commentID)
	}
}

func TestRunCommentEdit_MalformedID(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runCommentEdit(context.Background(), client, "dolthub", "museum-stats",
		"not-a-comment-id", "text", "ndjson", &stdout, &stderr)
	if !errors.Is(err, dolthub.ErrMalformedID) {
		t.Fatalf("error = %v, want ErrMalformedID", err)
	}
}

func TestRunCommentDelete(t *testing.T) {
	client := dolthub.NewMockClientWithOptions(dolthub.WithChangeLog(testChangeLogEntries()))
	commentID := "repositoryOwners/dolthub/repositories/museum-stats/pulls/1/comments/c0ffee00-0000-0000-0000-000000000001"
	var stderr bytes.Buffer

	if err := runCommentDelete(context.Background(), client, "dolthub", "museum-stats", commentID, &stderr); err != nil {
		t.Fatalf("runCommentDelete failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "Deleted comment") {
		t.Errorf("stderr = %q, want confirmation", stderr.String())
	}

	// Deleting again fails: the comment is gone.
	err := runCommentDelete(context.Background(), client, "dolthub", "museum-stats", commentID, &stderr)
	if !errors.Is(err, dolthub.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
