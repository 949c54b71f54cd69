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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRawQueryReturnsBodyVerbatim(t *testing.T) {
	// Spacing, key order, and fields outside the GraphQL envelope must
	// all survive untouched.
	served := `{"data": {"pull":{"pullId":"4"}},  "extensions":{"tookMs":12}}`

	var gotRequest recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		if cookie := r.Header.Get("Cookie"); cookie != "dolthubToken=test-token" {
			t.Errorf("expected dolthubToken cookie, got %q", cookie)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "dolthub-pr/") {
			t.Errorf("expected dolthub-pr User-Agent, got %q", ua)
		}
		gotRequest = decodeRequest(t, r)
		w.Write([]byte(served))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	got, err := client.RawQuery(context.Background(), "query { pull { pullId } }", map[string]any{"x": float64(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != served {
		t.Errorf("body altered in transit:\n got: %s\nwant: %s", got, served)
	}

	if gotRequest.Query != "query { pull { pullId } }" {
		t.Errorf("query altered in transit: %q", gotRequest.Query)
	}
	if gotRequest.Variables["x"] != float64(1) {
		t.Errorf("variables altered in transit: %v", gotRequest.Variables)
	}
}

func TestRawQueryOmitsOperationName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, present := body["operationName"]; present {
			t.Error("raw queries must not send an operationName")
		}
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.RawQuery(context.Background(), "{ __typename }", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRawQueryNonObjectBody(t *testing.T) {
	// A bare array is valid JSON with no errors key; it passes through.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	got, err := client.RawQuery(context.Background(), "{ __typename }", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[1,2,3]` {
		t.Errorf("body altered in transit: %s", got)
	}
}

func TestResponseValidation(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantError    bool
		wantMessages []string
		wantContains string
	}{
		{
			name:      "ok with data",
			status:    http.StatusOK,
			body:      `{"data":{"pulls":{"list":[]}}}`,
			wantError: false,
		},
		{
			name:      "teapot with data",
			status:    http.StatusTeapot,
			body:      `{"data":{"pulls":{"list":[]}}}`,
			wantError: false,
		},
		{
			name:         "single graphql error",
			status:       http.StatusOK,
			body:         `{"data":null,"errors":[{"message":"error getting pull"}]}`,
			wantError:    true,
			wantMessages: []string{"error getting pull"},
		},
		{
			name:         "multiple graphql errors",
			status:       http.StatusOK,
			body:         `{"errors":[{"message":"first failure"},{"message":"second failure"}]}`,
			wantError:    true,
			wantMessages: []string{"first failure", "second failure"},
			wantContains: "first failure; second failure",
		},
		{
			name:      "empty errors list is still an error",
			status:    http.StatusOK,
			body:      `{"data":{},"errors":[]}`,
			wantError: true,
		},
		{
			name:      "null errors key is still an error",
			status:    http.StatusOK,
			body:      `{"data":{},"errors":null}`,
			wantError: true,
		},
		{
			name:         "teapot with errors",
			status:       http.StatusTeapot,
			body:         `{"errors":[{"message":"short and stout"}]}`,
			wantError:    true,
			wantMessages: []string{"short and stout"},
		},
		{
			name:         "internal server error",
			status:       http.StatusInternalServerError,
			body:         `{"message":"something broke"}`,
			wantError:    true,
			wantContains: "status 500",
		},
		{
			name:         "disallowed status carries graphql messages",
			status:       http.StatusBadRequest,
			body:         `{"errors":[{"message":"malformed query"}]}`,
			wantError:    true,
			wantMessages: []string{"malformed query"},
		},
		{
			name:         "upstream timeout text",
			status:       http.StatusOK,
			body:         "upstream request timeout\n",
			wantError:    true,
			wantMessages: []string{"upstream request timeout"},
		},
		{
			name:         "html error page",
			status:       http.StatusOK,
			body:         `<html><body>bad gateway</body></html>`,
			wantError:    true,
			wantContains: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.RawQuery(context.Background(), "{ __typename }", nil)

			if !tt.wantError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var serverErr *ServerError
			if !errors.As(err, &serverErr) {
				t.Fatalf("expected *ServerError, got %T: %v", err, err)
			}
			if serverErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, serverErr.StatusCode)
			}
			if len(serverErr.Body) == 0 {
				t.Error("expected error to retain the response body")
			}
			if tt.wantMessages != nil {
				if len(serverErr.Messages) != len(tt.wantMessages) {
					t.Fatalf("expected messages %v, got %v", tt.wantMessages, serverErr.Messages)
				}
				for i, want := range tt.wantMessages {
					if serverErr.Messages[i] != want {
						t.Errorf("message %d: expected %q, got %q", i, want, serverErr.Messages[i])
					}
				}
			}
			if tt.wantContains != "" && !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("expected error to contain %q, got: %v", tt.wantContains, err)
			}
		})
	}
}

func TestTransportErrorsAreNotServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := newTestClient(t, endpoint)
	_, err := client.RawQuery(context.Background(), "{ __typename }", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		t.Errorf("connection failure must not be a *ServerError, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(t, server.URL)
	_, err := client.RawQuery(ctx, "{ __typename }", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResponseSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"`))
		chunk := strings.Repeat("x", 1024*1024)
		for i := 0; i < 11; i++ {
			w.Write([]byte(chunk))
		}
		w.Write([]byte(`"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.RawQuery(context.Background(), "{ __typename }", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "response size exceeded limit") {
		t.Errorf("expected size limit error, got: %v", err)
	}
}

// Helper functions shared by the tests in this package.

// recordedRequest is the decoded form of one GraphQL POST body.
type recordedRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

func decodeRequest(t *testing.T, r *http.Request) recordedRequest {
	t.Helper()
	var req recordedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req
}

func newTestClient(t *testing.T, endpoint string) *HTTPClient {
	t.Helper()
	client, err := New(Config{Token: "test-token", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}
