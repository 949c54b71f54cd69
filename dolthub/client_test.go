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
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tokenFile := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenFile, []byte("file-token\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n\n  \n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "direct token",
			cfg:  Config{Token: "abc123"},
		},
		{
			name: "token file",
			cfg:  Config{TokenFile: tokenFile},
		},
		{
			name:    "both token and token file",
			cfg:     Config{Token: "abc123", TokenFile: tokenFile},
			wantErr: ErrCredentialSource,
		},
		{
			name:    "neither token nor token file",
			cfg:     Config{},
			wantErr: ErrCredentialSource,
		},
		{
			name:    "missing token file",
			cfg:     Config{TokenFile: filepath.Join(dir, "does-not-exist")},
			wantErr: ErrCredentialSource,
		},
		{
			name:    "token file with only whitespace",
			cfg:     Config{TokenFile: emptyFile},
			wantErr: ErrCredentialSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected non-nil client")
			}
		})
	}
}

func TestStripToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing newline",
			input: "abc123\n",
			want:  "abc123",
		},
		{
			name:  "surrounding newlines",
			input: "\nabc123\n\n",
			want:  "abc123",
		},
		{
			name:  "interior newline",
			input: "abc\n123",
			want:  "abc123",
		},
		{
			name:  "windows line endings",
			input: "abc123\r\n",
			want:  "abc123",
		},
		{
			name:  "surrounding spaces and tabs",
			input: " \tabc123\t ",
			want:  "abc123",
		},
		{
			name:  "already clean",
			input: "abc123",
			want:  "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripToken(tt.input); got != tt.want {
				t.Errorf("stripToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveTokenStripsFileContents(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenFile, []byte("\nabc123\n\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	token, err := resolveToken("", tokenFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc123" {
		t.Errorf("expected abc123, got %q", token)
	}
}

func TestResolveTokenPassesDirectTokenThrough(t *testing.T) {
	token, err := resolveToken("direct-token", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "direct-token" {
		t.Errorf("expected direct-token, got %q", token)
	}
}
