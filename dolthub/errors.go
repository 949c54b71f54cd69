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
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for conditions callers commonly branch on. Use
// errors.Is to test for them; returned errors wrap these with detail.
var (
	// ErrCredentialSource indicates the client was configured with an
	// unusable credential: both Token and TokenFile set, neither set,
	// or a token file that resolves to an empty token.
	ErrCredentialSource = fmt.Errorf("invalid credential source")

	// ErrNoUpdateFields indicates UpdatePullRequest was called with no
	// fields to change.
	ErrNoUpdateFields = fmt.Errorf("no fields to update")

	// ErrNotFound indicates the API answered successfully but the
	// requested resource does not exist.
	ErrNotFound = fmt.Errorf("not found")

	// ErrMalformedID indicates a resource identifier string did not
	// have the shape this package produces.
	ErrMalformedID = fmt.Errorf("malformed resource id")
)

// ServerError is any failure reported by the API itself, as opposed to a
// failure reaching it. It covers GraphQL-level errors, unexpected HTTP
// statuses, and responses too mangled to interpret. Transport failures
// (DNS, connection reset, timeouts dialing) are returned as-is from
// net/http and are never wrapped in a ServerError.
type ServerError struct {
	// Op is the GraphQL operation that failed, or "raw" for RawQuery.
	Op string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Messages holds every message from the response's errors list, in
	// order, or a synthesized description when the response itself was
	// too malformed to carry one. Empty when the server sent neither.
	Messages []string

	// Body is the raw response body, retained for diagnostics.
	Body []byte
}

// Error formats the first line of every message the server sent, or the
// HTTP status when the server sent none.
func (e *ServerError) Error() string {
	detail := strings.Join(e.Messages, "; ")
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("dolthub: %s: %s (status %d)", e.Op, detail, e.StatusCode)
}
