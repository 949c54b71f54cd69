package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/dolthub-pr/dolthub"
)

func TestRunList_NDJSON(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "museum-stats",
		format: "ndjson",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 NDJSON lines, got %d", len(lines))
	}

	var first dolthub.PullRequestSummary
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first line: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first record ID = %d, want 1", first.ID)
	}
	if first.State != dolthub.StateOpen {
		t.Errorf("first record State = %q, want %q", first.State, dolthub.StateOpen)
	}

	if !strings.Contains(stderr.String(), "Successfully listed 3 pull requests") {
		t.Errorf("stderr = %q, want success message", stderr.String())
	}
}

func TestRunList_StateFilter(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "museum-stats",
		state:  dolthub.StateOpen,
		format: "ndjson",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 NDJSON line for open pulls, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "september") {
		t.Errorf("line = %q, want the open pull request", lines[0])
	}
}

func TestRunList_JSON(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "museum-stats",
		format: "json",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	var records []dolthub.PullRequestSummary
	if err := json.Unmarshal(stdout.Bytes(), &records); err != nil {
		t.Fatalf("failed to parse output as JSON array: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

func TestRunList_Table(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "museum-stats",
		format: "table",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{"TITLE", "Add september attendance figures", "Open", "alice"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestRunList_Empty(t *testing.T) {
	client := dolthub.NewMockClient()
	client.Summaries = nil
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "empty-repo",
		format: "ndjson",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	if strings.TrimSpace(stdout.String()) != "" {
		t.Errorf("expected no records, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "No pull requests found") {
		t.Errorf("stderr = %q, want empty-repository message", stderr.String())
	}
}

func TestRunList_OutputFile(t *testing.T) {
	client := dolthub.NewMockClient()
	outputFile := filepath.Join(t.TempDir(), "pulls.ndjson")
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:      "dolthub",
		repo:       "museum-stats",
		format:     "ndjson",
		outputFile: outputFile,
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("output file has %d lines, want 3", len(lines))
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no stdout output when writing to a file, got %q", stdout.String())
	}
}

func TestRunList_ServerError(t *testing.T) {
	serverErr := &dolthub.ServerError{Op: "PullsForRepo", StatusCode: 401, Messages: []string{"must be logged in"}}
	client := dolthub.NewMockClientWithOptions(dolthub.WithError(serverErr))
	var stdout, stderr bytes.Buffer

	err := runList(context.Background(), client, listOptions{
		owner:  "dolthub",
		repo:   "museum-stats",
		format: "ndjson",
	}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error from server, got nil")
	}

	var got *dolthub.ServerError
	if !errors.As(err, &got) {
		t.Fatalf("expected *dolthub.ServerError, got %T", err)
	}
	if got.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", got.StatusCode)
	}
}
