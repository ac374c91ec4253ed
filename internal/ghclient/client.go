// Package ghclient implements contract.RepoClient on top of the GitHub REST API.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/sirupsen/logrus"
)

// Client is a read-only GitHub client for repository metrics.
type Client struct {
	gh  *github.Client
	log *logrus.Entry
}

var _ contract.RepoClient = &Client{} // Compile-time check

// options collects the optional settings of New.
type options struct {
	baseURL    string
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*options)

// WithBaseURL points the client at a different API root, such as GitHub Enterprise
// or a test server. The URL must end with a slash.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the HTTP client timeout; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// New creates a client authenticated with token. An empty token makes anonymous requests.
func New(token string, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	gh := github.NewClient(&http.Client{Timeout: o.timeout})
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid api url '%s': %w", o.baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{gh: gh, log: contract.Logger("ghclient")}, nil
}

// NewFromConfig creates a client from the validated configuration.
func NewFromConfig(cfg *contract.Config) (*Client, error) {
	opts := []Option{WithTimeout(cfg.Timeout)}
	if cfg.APIURL != "" {
		opts = append(opts, WithBaseURL(cfg.APIURL))
	}
	return New(cfg.Token, opts...)
}

// ListCommits implements the RepoClient interface.
func (c *Client) ListCommits(ctx context.Context, repo schema.RepoRef, window schema.TimeWindow, page contract.PageRequest) ([]schema.Commit, contract.PageInfo, error) {
	opts := &github.CommitsListOptions{
		Since:       window.From,
		Until:       window.To,
		ListOptions: listOptions(page),
	}
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list commits: %w", err)
	}
	c.trace("commits", page, len(commits), resp)
	return mapAll(commits, toCommit), pageInfo(resp), nil
}

// ListPullRequests implements the RepoClient interface.
func (c *Client) ListPullRequests(ctx context.Context, repo schema.RepoRef, page contract.PageRequest) ([]schema.PullRequest, contract.PageInfo, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: listOptions(page),
	}
	prs, resp, err := c.gh.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list pull requests: %w", err)
	}
	c.trace("pulls", page, len(prs), resp)
	return mapAll(prs, toPullRequest), pageInfo(resp), nil
}

// ListIssues implements the RepoClient interface.
func (c *Client) ListIssues(ctx context.Context, repo schema.RepoRef, since time.Time, page contract.PageRequest) ([]schema.Issue, contract.PageInfo, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		ListOptions: listOptions(page),
	}
	issues, resp, err := c.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list issues: %w", err)
	}
	c.trace("issues", page, len(issues), resp)
	return mapAll(issues, toIssue), pageInfo(resp), nil
}

// ListDeployments implements the RepoClient interface.
func (c *Client) ListDeployments(ctx context.Context, repo schema.RepoRef, page contract.PageRequest) ([]schema.Deployment, contract.PageInfo, error) {
	opts := &github.DeploymentsListOptions{ListOptions: listOptions(page)}
	deployments, resp, err := c.gh.Repositories.ListDeployments(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list deployments: %w", err)
	}
	c.trace("deployments", page, len(deployments), resp)
	return mapAll(deployments, toDeployment), pageInfo(resp), nil
}

// ListContributors implements the RepoClient interface.
func (c *Client) ListContributors(ctx context.Context, repo schema.RepoRef, page contract.PageRequest) ([]schema.Contributor, contract.PageInfo, error) {
	opts := &github.ListContributorsOptions{ListOptions: listOptions(page)}
	contributors, resp, err := c.gh.Repositories.ListContributors(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list contributors: %w", err)
	}
	c.trace("contributors", page, len(contributors), resp)
	return mapAll(contributors, toContributor), pageInfo(resp), nil
}

// ListPullRequestCommits implements the RepoClient interface.
func (c *Client) ListPullRequestCommits(ctx context.Context, repo schema.RepoRef, number int, page contract.PageRequest) ([]schema.Commit, contract.PageInfo, error) {
	opts := listOptions(page)
	commits, resp, err := c.gh.PullRequests.ListCommits(ctx, repo.Owner, repo.Name, number, &opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list commits for pull request #%d: %w", number, err)
	}
	c.trace("pull commits", page, len(commits), resp)
	return mapAll(commits, toCommit), pageInfo(resp), nil
}

// ListPullRequestReviews implements the RepoClient interface.
func (c *Client) ListPullRequestReviews(ctx context.Context, repo schema.RepoRef, number int, page contract.PageRequest) ([]schema.Review, contract.PageInfo, error) {
	opts := listOptions(page)
	reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, repo.Owner, repo.Name, number, &opts)
	if err != nil {
		return nil, contract.PageInfo{}, fmt.Errorf("list reviews for pull request #%d: %w", number, err)
	}
	c.trace("pull reviews", page, len(reviews), resp)
	return mapAll(reviews, toReview), pageInfo(resp), nil
}

// GetPullRequest implements the RepoClient interface.
func (c *Client) GetPullRequest(ctx context.Context, repo schema.RepoRef, number int) (schema.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return schema.PullRequest{}, fmt.Errorf("get pull request #%d: %w", number, err)
	}
	return toPullRequest(pr), nil
}

// GetCommit implements the RepoClient interface.
func (c *Client) GetCommit(ctx context.Context, repo schema.RepoRef, sha string) (schema.Commit, error) {
	commit, _, err := c.gh.Repositories.GetCommit(ctx, repo.Owner, repo.Name, sha, nil)
	if err != nil {
		return schema.Commit{}, fmt.Errorf("get commit %s: %w", sha, err)
	}
	return toCommit(commit), nil
}

// trace logs one page fetch at debug level.
func (c *Client) trace(endpoint string, page contract.PageRequest, count int, resp *github.Response) {
	fields := logrus.Fields{
		"endpoint": endpoint,
		"page":     page.Page,
		"count":    count,
	}
	if resp != nil {
		fields["next_page"] = resp.NextPage
		fields["rate_remaining"] = resp.Rate.Remaining
	}
	c.log.WithFields(fields).Debug("fetched page")
}

// listOptions converts a page request to go-github list options.
func listOptions(page contract.PageRequest) github.ListOptions {
	p := page.Page
	if p < 1 {
		p = 1
	}
	return github.ListOptions{Page: p, PerPage: page.PerPage}
}

// pageInfo extracts the continuation from a response.
func pageInfo(resp *github.Response) contract.PageInfo {
	if resp == nil {
		return contract.PageInfo{}
	}
	return contract.PageInfo{NextPage: resp.NextPage}
}
