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

func TestRunShow_NDJSON(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout bytes.Buffer

	if err := runShow(context.Background(), client, "dolthub", "museum-stats", 1, "ndjson", &stdout); err != nil {
		t.Fatalf("runShow failed: %v", err)
	}

	var pull dolthub.PullRequest
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &pull); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if pull.ID != 1 {
		t.Errorf("ID = %d, want 1", pull.ID)
	}
	if pull.Source.Branch != "september-data" {
		t.Errorf("Source.Branch = %q, want september-data", pull.Source.Branch)
	}
}

func TestRunShow_Table(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout bytes.Buffer

	if err := runShow(context.Background(), client, "dolthub", "museum-stats", 1, "table", &stdout); err != nil {
		t.Fatalf("runShow failed: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"#1 Add september attendance figures",
		"Open",
		"alice/museum-stats/september-data",
		"dolthub/museum-stats/main",
		"Fork:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestRunShow_NotFound(t *testing.T) {
	client := dolthub.NewMockClient()
	var stdout bytes.Buffer

	err := runShow(context.Background(), client, "dolthub", "museum-stats", 99, "ndjson", &stdout)
	if !errors.Is(err, dolthub.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
