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

// Package testutil provides common test helpers for dolthub-pr
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MockServer provides common mock server configurations for testing
type MockServer struct {
	*httptest.Server
	RequestCount int32
}

// NewMockServer creates a basic mock server that responds to GraphQL requests
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &MockServer{Server: server}
}

// NewGraphQLErrorServer creates a mock server that answers every request
// with a GraphQL error payload and status 200, which is how the live API
// reports most failures.
func NewGraphQLErrorServer(t *testing.T, messages ...string) *MockServer {
	t.Helper()
	errs := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, map[string]interface{}{"message": msg})
	}
	body := map[string]interface{}{
		"data":   nil,
		"errors": errs,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return &MockServer{Server: server}
}

// NewUpstreamTimeoutServer creates a mock server that reproduces the
// API's timeout answer: status 200 and a plain-text body, no JSON
// anywhere.
func NewUpstreamTimeoutServer(t *testing.T) *MockServer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("upstream request timeout"))
	}))
	t.Cleanup(server.Close)
	return &MockServer{Server: server}
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	t.Cleanup(server.Close)
	return &MockServer{Server: server}
}

// NewUnreachableServer returns the URL of a server that has already been
// shut down. Requests to it fail with connection refused before any
// response is produced.
func NewUnreachableServer(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	return url
}

// GeneratePullsResponse generates one page of the pulls listing with ids
// from startID through endID. Pulls are emitted newest first, matching
// the live API's ordering. A non-empty nextToken marks the page as
// partial.
func GeneratePullsResponse(startID, endID int, nextToken string) map[string]interface{} {
	builder := NewResponseBuilder().WithNextPageToken(nextToken)
	for i := endID; i >= startID; i-- {
		builder.WithPulls(NewPullBuilder(i).WithDescription("").BuildListItem())
	}
	return builder.Build()
}

// AssertGraphQLRequest validates a GraphQL request structure
func AssertGraphQLRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if r.Method != "POST" {
		t.Errorf("Expected POST method, got: %s", r.Method)
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got: %s", ct)
	}
	if cookie := r.Header.Get("Cookie"); !strings.HasPrefix(cookie, "dolthubToken=") {
		t.Errorf("Expected dolthubToken cookie, got: %s", cookie)
	}
}
