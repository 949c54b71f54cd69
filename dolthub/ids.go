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
	"strconv"
	"strings"
)

// The API addresses mutable resources by path-shaped ids, e.g.
// "repositoryOwners/acme/repositories/inventory/pulls/4" for a pull
// request and the same path with "/comments/<uuid>" appended for a
// comment on it.

// pullResourceID builds the resource id of a pull request.
func pullResourceID(owner, repo string, id int) string {
	return fmt.Sprintf("repositoryOwners/%s/repositories/%s/pulls/%d", owner, repo, id)
}

// parseCommentID validates that a comment id belongs to a pull request
// in the given repository and returns that pull request's number. It
// fails with ErrMalformedID before any request is sent, so a bad id
// never reaches the server.
func parseCommentID(owner, repo, commentID string) (int, error) {
	parts := strings.Split(commentID, "/")
	if len(parts) != 8 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, commentID)
	}
	if parts[0] != "repositoryOwners" || parts[2] != "repositories" || parts[4] != "pulls" || parts[6] != "comments" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, commentID)
	}
	if parts[1] != owner || parts[3] != repo {
		return 0, fmt.Errorf("%w: %q does not belong to %s/%s", ErrMalformedID, commentID, owner, repo)
	}
	pullID, err := strconv.Atoi(parts[5])
	if err != nil || parts[7] == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, commentID)
	}
	return pullID, nil
}
