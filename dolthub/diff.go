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
)

// DiffSummary implements Client.DiffSummary. The counts are stable for
// a given pair of commit ids, before and after merge.
//
// Note the orientation: the API's "from" side is the destination and
// its "to" side is the source, the reverse of how the web UI labels a
// pull request.
func (c *HTTPClient) DiffSummary(ctx context.Context, source, destination CommitRef) (*DiffSummary, error) {
	raw, err := c.do(ctx, opDiffSummary, queryDiffSummary, map[string]any{
		"initialReq": map[string]any{
			"fromRepoName":  destination.Repo,
			"fromOwnerName": destination.Owner,
			"toRepoName":    source.Repo,
			"toOwnerName":   source.Owner,
			"fromCommitId":  destination.CommitID,
			"toCommitId":    source.CommitID,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			DiffSummaryAsync *struct {
				DiffSummary *wireDiffSummary `json:"diffSummary"`
			} `json:"diffSummaryAsync"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", opDiffSummary, err)
	}
	if resp.Data.DiffSummaryAsync == nil || resp.Data.DiffSummaryAsync.DiffSummary == nil {
		return nil, fmt.Errorf("diff summary %s/%s@%s..%s/%s@%s: %w",
			source.Owner, source.Repo, source.CommitID,
			destination.Owner, destination.Repo, destination.CommitID,
			ErrNotFound)
	}

	return resp.Data.DiffSummaryAsync.DiffSummary.toDiffSummary(), nil
}
