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
	"io"
	"net/http"
)

// maxResponseSize caps response bodies at 10MB to protect against
// malformed or malicious responses.
const maxResponseSize = 10 * 1024 * 1024

// authTransport attaches the DoltHub session cookie and User-Agent to
// every request and caps response body size. The site authenticates its
// GraphQL calls with a "dolthubToken" cookie rather than an
// Authorization header, and the value is set verbatim so tokens that
// contain characters net/http would re-encode survive the trip.
type authTransport struct {
	token     string
	userAgent string
	base      http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone to avoid modifying the original request
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Cookie", "dolthubToken="+t.token)
	reqClone.Header.Set("User-Agent", t.userAgent)

	resp, err := t.base.RoundTrip(reqClone)
	if err != nil {
		return nil, err
	}

	// Wrap response body with size limit
	resp.Body = &limitedReader{
		ReadCloser: resp.Body,
		limit:      maxResponseSize,
	}

	return resp, nil
}

// limitedReader wraps an io.ReadCloser and fails when the read size
// exceeds its limit.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

func (r *limitedReader) Read(p []byte) (int, error) {
	if r.read >= r.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", r.limit)
	}

	n, err := r.ReadCloser.Read(p)
	r.read += int64(n)

	if r.read > r.limit {
		return n, fmt.Errorf("response size exceeded limit of %d bytes", r.limit)
	}

	return n, err
}
