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
	"fmt"
	"strconv"
)

// ListChangeLog implements Client.ListChangeLog. The details list is a
// GraphQL union; each member is decoded into the shared wire superset
// and converted according to its __typename. The server returns the
// whole log in one response, oldest first.
func (c *HTTPClient) ListChangeLog(ctx context.Context, owner, repo string, id int) ([]ChangeLogEntry, error) {
	raw, err := c.do(ctx, opChangeLog, queryChangeLog, map[string]any{
		"ownerName": owner,
		"repoName":  repo,
		"pullId":    strconv.Itoa(id),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			Pull *struct {
				Details []wirePullDetail `json:"details"`
			} `json:"pull"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", opChangeLog, err)
	}
	if resp.Data.Pull == nil {
		return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, id, ErrNotFound)
	}

	entries := make([]ChangeLogEntry, 0, len(resp.Data.Pull.Details))
	for _, detail := range resp.Data.Pull.Details {
		entries = append(entries, detail.toEntry())
	}

	return entries, nil
}
