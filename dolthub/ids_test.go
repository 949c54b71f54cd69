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
	"errors"
	"testing"
)

func TestPullResourceID(t *testing.T) {
	got := pullResourceID("dolthub", "museum-stats", 4)
	want := "repositoryOwners/dolthub/repositories/museum-stats/pulls/4"
	if got != want {
		t.Errorf("pullResourceID = %q, want %q", got, want)
	}
}

func TestParseCommentID(t *testing.T) {
	tests := []struct {
		name      string
		commentID string
		wantPull  int
		wantErr   bool
	}{
		{
			name:      "valid",
			commentID: "repositoryOwners/dolthub/repositories/museum-stats/pulls/4/comments/uuid-1",
			wantPull:  4,
		},
		{
			name:      "wrong owner",
			commentID: "repositoryOwners/other/repositories/museum-stats/pulls/4/comments/uuid-1",
			wantErr:   true,
		},
		{
			name:      "wrong repository",
			commentID: "repositoryOwners/dolthub/repositories/other/pulls/4/comments/uuid-1",
			wantErr:   true,
		},
		{
			name:      "too few segments",
			commentID: "repositoryOwners/dolthub/repositories/museum-stats/pulls/4",
			wantErr:   true,
		},
		{
			name:      "wrong markers",
			commentID: "owners/dolthub/repos/museum-stats/pulls/4/comments/uuid-1",
			wantErr:   true,
		},
		{
			name:      "non-numeric pull id",
			commentID: "repositoryOwners/dolthub/repositories/museum-stats/pulls/four/comments/uuid-1",
			wantErr:   true,
		},
		{
			name:      "empty comment segment",
			commentID: "repositoryOwners/dolthub/repositories/museum-stats/pulls/4/comments/",
			wantErr:   true,
		},
		{
			name:      "empty string",
			commentID: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pull, err := parseCommentID("dolthub", "museum-stats", tt.commentID)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedID) {
					t.Errorf("expected ErrMalformedID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pull != tt.wantPull {
				t.Errorf("expected pull %d, got %d", tt.wantPull, pull)
			}
		})
	}
}
