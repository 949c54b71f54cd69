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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirseerhq/dolthub-pr/pkg/version"
)

// DefaultEndpoint is the GraphQL endpoint of dolthub.com.
const DefaultEndpoint = "https://www.dolthub.com/graphql"

const defaultTimeout = 30 * time.Second

// allowedStatus lists the HTTP statuses the API answers valid queries
// with. The server leans on 301/302 for some repository redirects and
// has been observed answering real data with 418.
var allowedStatus = map[int]bool{
	http.StatusOK:               true,
	http.StatusMovedPermanently: true,
	http.StatusFound:            true,
	http.StatusTeapot:           true,
}

// Config configures a new HTTPClient. Exactly one of Token and TokenFile
// must be set.
type Config struct {
	// Token is the DoltHub session token, passed directly.
	Token string

	// TokenFile is the path to a file holding the session token. The
	// file contents are stripped of whitespace and newlines.
	TokenFile string

	// Endpoint overrides the API endpoint. Defaults to
	// DefaultEndpoint; tests point it at a local server.
	Endpoint string

	// UserAgent overrides the User-Agent header. Defaults to
	// "dolthub-pr/<version>".
	UserAgent string

	// Timeout bounds each API request. Defaults to 30 seconds.
	Timeout time.Duration
}

// HTTPClient implements Client against the DoltHub GraphQL API over
// HTTP. It is safe for concurrent use.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
}

// Compile-time check that HTTPClient implements the Client interface.
var _ Client = (*HTTPClient)(nil)

// New creates an HTTPClient from cfg. It fails with ErrCredentialSource
// when the credential configuration is unusable, including a token file
// that is missing or empty.
func New(cfg Config) (*HTTPClient, error) {
	token, err := resolveToken(cfg.Token, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("dolthub-pr/%s", version.Version)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	// Configure transport with connection pooling
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			token:     token,
			userAgent: userAgent,
			base:      transport,
		},
	}

	return &HTTPClient{
		httpClient: httpClient,
		endpoint:   endpoint,
	}, nil
}

// resolveToken turns the two credential fields into the one token the
// transport needs, enforcing that exactly one source was given.
func resolveToken(token, tokenFile string) (string, error) {
	switch {
	case token != "" && tokenFile != "":
		return "", fmt.Errorf("%w: Token and TokenFile are mutually exclusive", ErrCredentialSource)
	case token != "":
		return token, nil
	case tokenFile != "":
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", fmt.Errorf("%w: read token file: %w", ErrCredentialSource, err)
		}
		stripped := stripToken(string(data))
		if stripped == "" {
			return "", fmt.Errorf("%w: token file %s is empty", ErrCredentialSource, tokenFile)
		}
		return stripped, nil
	default:
		return "", fmt.Errorf("%w: set exactly one of Token or TokenFile", ErrCredentialSource)
	}
}

// stripToken removes every newline and carriage return, then trims
// surrounding whitespace. Tokens land in a cookie header, where any
// surviving newline would corrupt the request.
func stripToken(s string) string {
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	return strings.TrimSpace(s)
}

// apiRequest is the JSON body of every GraphQL POST.
type apiRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// apiEnvelope is the top level of every GraphQL response. Only the
// errors key matters here; data is decoded per operation.
type apiEnvelope struct {
	Errors json.RawMessage `json:"errors"`
}

// RawQuery implements Client.RawQuery.
func (c *HTTPClient) RawQuery(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	return c.do(ctx, "", query, variables)
}

// do posts one GraphQL request and validates the response the same way
// for every operation. The returned bytes are the full response body,
// unmodified.
//
// Validation order matters and mirrors how the server actually fails:
//  1. a plain-text "upstream request timeout" body, which arrives with
//     status 200 when the backing query runs too long
//  2. a body that is not JSON at all
//  3. an HTTP status outside allowedStatus
//  4. an errors key in the envelope; its presence is fatal even when
//     the list is empty or null, because the server only emits the key
//     on failure
func (c *HTTPClient) do(ctx context.Context, operationName, query string, variables map[string]any) (json.RawMessage, error) {
	op := operationName
	if op == "" {
		op = "raw"
	}

	payload, err := json.Marshal(apiRequest{
		OperationName: operationName,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if strings.TrimSpace(string(body)) == "upstream request timeout" {
		return nil, &ServerError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Messages:   []string{"upstream request timeout"},
			Body:       body,
		}
	}

	if !json.Valid(body) {
		return nil, &ServerError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Messages:   []string{"response body is not valid JSON"},
			Body:       body,
		}
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// A non-object body cannot carry an errors key.
		env = apiEnvelope{}
	}

	if !allowedStatus[resp.StatusCode] {
		return nil, &ServerError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Messages:   graphqlMessages(env.Errors),
			Body:       body,
		}
	}

	if env.Errors != nil {
		return nil, &ServerError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Messages:   graphqlMessages(env.Errors),
			Body:       body,
		}
	}

	return body, nil
}
