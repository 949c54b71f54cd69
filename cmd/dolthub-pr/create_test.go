package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirseerhq/dolthub-pr/dolthub"
)

func TestRunCreate(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runCreate(context.Background(), client, "dolthub", "museum-stats", dolthub.CreatePullRequestOptions{
		Title:       "Add october figures",
		Description: "October import.",
		FromBranch:  "october-data",
		ToBranch:    "main",
	}, "ndjson", &stdout, &stderr)
	if err != nil {
		t.Fatalf("runCreate failed: %v", err)
	}

	var pull dolthub.PullRequest
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &pull); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if pull.ID <= 100 {
		t.Errorf("ID = %d, want a newly assigned number", pull.ID)
	}
	if pull.State != dolthub.StateOpen {
		t.Errorf("State = %q, want %q", pull.State, dolthub.StateOpen)
	}
	if pull.Source.Branch != "october-data" {
		t.Errorf("Source.Branch = %q, want october-data", pull.Source.Branch)
	}
	if pull.Fork {
		t.Error("Fork = true for a same-repository pull request")
	}

	if !strings.Contains(stderr.String(), "Created pull request dolthub/museum-stats#") {
		t.Errorf("stderr = %q, want creation message", stderr.String())
	}
}

func TestRunCreate_FromFork(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runCreate(context.Background(), client, "dolthub", "museum-stats", dolthub.CreatePullRequestOptions{
		Title:      "Fix outliers",
		FromBranch: "fixes",
		ToBranch:   "main",
		FromOwner:  "alice",
		FromRepo:   "museum-stats",
	}, "ndjson", &stdout, &stderr)
	if err != nil {
		t.Fatalf("runCreate failed: %v", err)
	}

	var pull dolthub.PullRequest
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &pull); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !pull.Fork {
		t.Error("Fork = false for a cross-repository pull request")
	}
	if pull.Source.Owner != "alice" {
		t.Errorf("Source.Owner = %q, want alice", pull.Source.Owner)
	}
	if pull.Destination.Owner != "dolthub" {
		t.Errorf("Destination.Owner = %q, want dolthub", pull.Destination.Owner)
	}
}

func TestRunCreate_MissingBranches(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runCreate(context.Background(), client, "dolthub", "museum-stats", dolthub.CreatePullRequestOptions{
		Title: "No branches",
	}, "ndjson", &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for missing branches, got nil")
	}
}
