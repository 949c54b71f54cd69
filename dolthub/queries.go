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

// The query documents below are pinned byte-for-byte to what the
// dolthub.com web application sends. The API is private and has no
// published schema, so the safest contract is the one the site itself
// exercises. Do not reformat them.

const (
	opPullDetails    = "PullForPullDetailsQuery"
	queryPullDetails = "query PullForPullDetailsQuery($repoName: String!, $ownerName: String!, $pullId: String!) {  pull(repoName: $repoName, ownerName: $ownerName, pullId: $pullId) {    ...PullForPullDetails    __typename  }}fragment PullForPullDetails on Pull {  _id  pullId  state  title  description  fromBranchName  fromBranchOwnerName  fromBranchRepoName  toBranchName  toBranchOwnerName  toBranchRepoName  creatorName  isFork  __typename}"
)

const (
	opPullList    = "PullsForRepo"
	queryPullList = "query PullsForRepo($ownerName: String!, $repoName: String!, $pageToken: String) {  pulls(ownerName: $ownerName, repoName: $repoName, pageToken: $pageToken) {    ...PullListForPullList    __typename  }}fragment PullListForPullList on PullList {  list {    ...PullForPullList    __typename  }  nextPageToken  __typename}fragment PullForPullList on Pull {  _id  createdAt  ownerName  repoName  pullId  creatorName  description  state  title  __typename}"
)

const (
	opCreatePull       = "CreatePullRequestWithForks"
	mutationCreatePull = "mutation CreatePullRequestWithForks($title: String!, $description: String!, $fromBranchName: String!, $toBranchName: String!, $fromBranchRepoName: String!, $fromBranchOwnerName: String!, $toBranchRepoName: String!, $toBranchOwnerName: String!, $parentRepoName: String!, $parentOwnerName: String!) {  createPullWithForks(    title: $title    description: $description    fromBranchName: $fromBranchName    toBranchName: $toBranchName    fromBranchOwnerName: $fromBranchOwnerName    fromBranchRepoName: $fromBranchRepoName    toBranchOwnerName: $toBranchOwnerName    toBranchRepoName: $toBranchRepoName    parentRepoName: $parentRepoName    parentOwnerName: $parentOwnerName  ) {    _id    pullId    __typename  }}"
)

const (
	opUpdatePull       = "UpdatePullInfo"
	mutationUpdatePull = "mutation UpdatePullInfo($_id: String!, $title: String!, $description: String!, $state: PullState!) {  updatePull(_id: $_id, title: $title, description: $description, state: $state) {    _id    __typename  }}"
)

const (
	opMergePull       = "MergePull"
	mutationMergePull = "mutation MergePull($repoName: String!, $ownerName: String!, $pullId: String!) {  mergePull(repoName: $repoName, ownerName: $ownerName, pullId: $pullId) {    ...PullForPullDetails    __typename  }}fragment PullForPullDetails on Pull {  _id  pullId  state  title  description  fromBranchName  fromBranchOwnerName  fromBranchRepoName  toBranchName  toBranchOwnerName  toBranchRepoName  creatorName  isFork  __typename}"
)

const (
	opChangeLog    = "PullDetailsForPullDetails"
	queryChangeLog = "query PullDetailsForPullDetails($repoName: String!, $ownerName: String!, $pullId: String!) {  pull(repoName: $repoName, ownerName: $ownerName, pullId: $pullId) {    ...PullDetails    __typename  }}fragment PullDetails on Pull {  _id  fromBranchName  toBranchName  details {    ...PullDetailsForPullDetails    __typename  }  __typename}fragment PullDetailsForPullDetails on PullDetails {  ... on PullDetailComment {    ...PullDetailComment    __typename  }  ... on PullDetailCommit {    ...PullDetailCommit    __typename  }  ... on PullDetailSummary {    ...PullDetailSummary    __typename  }  ... on PullDetailLog {    ...PullDetailLog    __typename  }  __typename}fragment PullDetailComment on PullDetailComment {  _id  authorName  comment  createdAt  updatedAt  __typename}fragment PullDetailCommit on PullDetailCommit {  _id  username  message  createdAt  commitId  parentCommitId  __typename}fragment PullDetailSummary on PullDetailSummary {  _id  username  createdAt  numCommits  __typename}fragment PullDetailLog on PullDetailLog {  _id  username  createdAt  activity  __typename}"
)

const (
	opCreateComment       = "CreatePullComment"
	mutationCreateComment = "mutation CreatePullComment($repoName: String!, $ownerName: String!, $parentId: String!, $comment: String!) {  createPullComment(    repoName: $repoName    ownerName: $ownerName    pullId: $parentId    comment: $comment  ) {    ...PullSummaryForPullDetails    __typename  }}fragment PullSummaryForPullDetails on PullSummary {  _id  __typename}"
)

const (
	opUpdateComment       = "UpdatePullComment"
	mutationUpdateComment = "mutation UpdatePullComment($_id: String!, $authorName: String!, $comment: String!) {  updatePullComment(_id: $_id, authorName: $authorName, comment: $comment) {    ...PullSummaryForPullDetails    __typename  }}fragment PullSummaryForPullDetails on PullSummary {  _id  __typename}"
)

const (
	opDeleteComment       = "DeletePullComment"
	mutationDeleteComment = "mutation DeletePullComment($_id: String!) {  deletePullComment(_id: $_id) {    ...PullSummaryForPullDetails    __typename  }}fragment PullSummaryForPullDetails on PullSummary {  _id  __typename}"
)

const (
	opDiffSummary    = "DiffSummaryAsync"
	queryDiffSummary = "query DiffSummaryAsync($initialReq: DiffSummaryReq, $resolvedReq: ResolvedDiffSummaryReq) {  diffSummaryAsync(initialReq: $initialReq, resolvedReq: $resolvedReq) {    resolvedReq {      fromCommitName      toCommitName      tableName      __typename    }    diffSummary {      ...DiffSummaryForDiffs      __typename    }    __typename  }}fragment DiffSummaryForDiffs on DiffSummary {  rowsUnmodified  rowsAdded  rowsDeleted  rowsModified  cellsModified  rowCount  cellCount  __typename}"
)

const (
	opPullCommits    = "PullCommitsForDiffSelector"
	queryPullCommits = "query PullCommitsForDiffSelector($repoName: String!, $ownerName: String!, $pullId: String!) {  pull(repoName: $repoName, ownerName: $ownerName, pullId: $pullId) {    _id    summary {      ...PullSummaryForDiffSelector      __typename    }    __typename  }}fragment PullSummaryForDiffSelector on PullSummary {  _id  commits {    ...CommitListForDiffSelector    __typename  }  mergeState {    premergeFromCommit    premergeToCommit    mergeBaseCommit    __typename  }  __typename}fragment CommitListForDiffSelector on CommitList {  list {    ...CommitForDiffSelector    __typename  }  nextPageToken  __typename}fragment CommitForDiffSelector on Commit {  _id  commitId  message  committedAt  committer {    displayName    __typename  }  __typename}"
)
