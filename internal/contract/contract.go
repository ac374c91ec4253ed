// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/doralens/schema"
)

// PageRequest selects one page of a list call.
type PageRequest struct {
	Page    int // 1-based; 0 is treated as 1
	PerPage int
}

// PageInfo describes where a list call can continue.
type PageInfo struct {
	NextPage int // 0 when the returned page is the last one
}

// RepoClient defines the read-only repository API operations needed for metrics.
// This allows the fetch and aggregation logic to be tested without a live API.
type RepoClient interface {
	// --- Window-scoped listings ---

	// ListCommits returns commits authored within the window.
	ListCommits(ctx context.Context, repo schema.RepoRef, window schema.TimeWindow, page PageRequest) ([]schema.Commit, PageInfo, error)

	// ListPullRequests returns pull requests of any state, most recently updated first.
	ListPullRequests(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.PullRequest, PageInfo, error)

	// ListIssues returns issues of any state updated since the given instant.
	// The upstream API includes pull requests; they are flagged with IsPullRequest.
	ListIssues(ctx context.Context, repo schema.RepoRef, since time.Time, page PageRequest) ([]schema.Issue, PageInfo, error)

	// ListDeployments returns deployments, most recent first.
	ListDeployments(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.Deployment, PageInfo, error)

	// ListContributors returns repository contributors by contribution count.
	ListContributors(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.Contributor, PageInfo, error)

	// --- Per pull request ---

	// ListPullRequestCommits returns the commits belonging to a pull request.
	ListPullRequestCommits(ctx context.Context, repo schema.RepoRef, number int, page PageRequest) ([]schema.Commit, PageInfo, error)

	// ListPullRequestReviews returns the reviews submitted on a pull request.
	ListPullRequestReviews(ctx context.Context, repo schema.RepoRef, number int, page PageRequest) ([]schema.Review, PageInfo, error)

	// GetPullRequest returns a single pull request with its comment counters populated.
	GetPullRequest(ctx context.Context, repo schema.RepoRef, number int) (schema.PullRequest, error)

	// --- Per commit ---

	// GetCommit returns a single commit with its touched file paths.
	GetCommit(ctx context.Context, repo schema.RepoRef, sha string) (schema.Commit, error)
}
