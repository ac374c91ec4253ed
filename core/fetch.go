package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetcher collects the records of one repository for a time window.
type Fetcher struct {
	client   contract.RepoClient
	perPage  int
	maxPages int
	workers  int
	hydrates func(schema.HydrationKind) bool
	log      *logrus.Entry
}

// NewFetcher creates a Fetcher that pages and hydrates as configured.
func NewFetcher(client contract.RepoClient, cfg *contract.Config) *Fetcher {
	f := &Fetcher{
		client:   client,
		perPage:  cfg.PerPage,
		maxPages: cfg.MaxPages,
		workers:  cfg.Workers,
		hydrates: cfg.Hydrates,
		log:      contract.Logger("fetch"),
	}
	if f.perPage <= 0 {
		f.perPage = contract.DefaultPerPage
	}
	if f.maxPages <= 0 {
		f.maxPages = contract.DefaultMaxPages
	}
	if f.workers <= 0 {
		f.workers = 1
	}
	return f
}

// FetchWindow issues the five record-kind lists concurrently and joins them.
// Any failure cancels the rest and fails the whole window.
func (f *Fetcher) FetchWindow(ctx context.Context, repo schema.RepoRef, window schema.TimeWindow) (schema.RecordSet, error) {
	start := time.Now()
	set := schema.RecordSet{Repo: repo, Window: window}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		commits, err := collect[schema.Commit](gctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Commit, contract.PageInfo, error) {
			return f.client.ListCommits(ctx, repo, window, page)
		})
		if err != nil {
			return fmt.Errorf("fetch commits: %w", err)
		}
		set.Commits = commits
		return nil
	})
	g.Go(func() error {
		prs, err := collect[schema.PullRequest](gctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.PullRequest, contract.PageInfo, error) {
			return f.client.ListPullRequests(ctx, repo, page)
		})
		if err != nil {
			return fmt.Errorf("fetch pull requests: %w", err)
		}
		set.PullRequests = prs
		return nil
	})
	g.Go(func() error {
		issues, err := collect[schema.Issue](gctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Issue, contract.PageInfo, error) {
			return f.client.ListIssues(ctx, repo, window.From, page)
		})
		if err != nil {
			return fmt.Errorf("fetch issues: %w", err)
		}
		set.Issues = issues
		return nil
	})
	g.Go(func() error {
		deployments, err := collect[schema.Deployment](gctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Deployment, contract.PageInfo, error) {
			return f.client.ListDeployments(ctx, repo, page)
		})
		if err != nil {
			return fmt.Errorf("fetch deployments: %w", err)
		}
		set.Deployments = deployments
		return nil
	})
	g.Go(func() error {
		contributors, err := collect[schema.Contributor](gctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Contributor, contract.PageInfo, error) {
			return f.client.ListContributors(ctx, repo, page)
		})
		if err != nil {
			return fmt.Errorf("fetch contributors: %w", err)
		}
		set.Contributors = contributors
		return nil
	})
	if err := g.Wait(); err != nil {
		return schema.RecordSet{}, err
	}

	filterWindow(&set)

	if err := f.hydrateRecords(ctx, &set); err != nil {
		return schema.RecordSet{}, err
	}

	f.log.WithFields(logrus.Fields{
		"repo":          repo.String(),
		"window":        window.Label(),
		"commits":       len(set.Commits),
		"pull_requests": len(set.PullRequests),
		"issues":        len(set.Issues),
		"deployments":   len(set.Deployments),
		"contributors":  len(set.Contributors),
		"elapsed":       time.Since(start).String(),
	}).Debug("fetched window")
	return set, nil
}

// collect drains a pager sized by the fetcher settings.
func collect[T any](ctx context.Context, f *Fetcher, fetch contract.PageFunc[T]) ([]T, error) {
	return contract.NewPager[T](fetch, f.perPage, f.maxPages).Collect(ctx)
}

// filterWindow keeps only the records that can affect the window.
// Commits are already bounded upstream by since/until.
func filterWindow(set *schema.RecordSet) {
	window := set.Window

	prs := set.PullRequests[:0:0]
	for _, pr := range set.PullRequests {
		if window.Contains(pr.CreatedAt) || window.ContainsPtr(pr.MergedAt) {
			prs = append(prs, pr)
		}
	}
	set.PullRequests = prs

	issues := set.Issues[:0:0]
	for _, i := range set.Issues {
		if i.IsPullRequest {
			continue
		}
		if window.Contains(i.CreatedAt) || window.ContainsPtr(i.ClosedAt) {
			issues = append(issues, i)
		}
	}
	set.Issues = issues

	deployments := set.Deployments[:0:0]
	for _, d := range set.Deployments {
		if window.Contains(d.CreatedAt) {
			deployments = append(deployments, d)
		}
	}
	set.Deployments = deployments
}

// hydrateRecords runs the enabled per-record enrichment calls with bounded
// concurrency. Each task writes only its own slice element.
func (f *Fetcher) hydrateRecords(ctx context.Context, set *schema.RecordSet) error {
	hydratePRs := f.enabled(schema.HydratePRDetails) || f.enabled(schema.HydratePRCommits) || f.enabled(schema.HydrateReviews)
	if !hydratePRs && !f.enabled(schema.HydrateCommitFiles) {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	if hydratePRs {
		for i := range set.PullRequests {
			pr := &set.PullRequests[i]
			g.Go(func() error {
				return f.hydratePullRequest(gctx, set.Repo, pr)
			})
		}
	}

	if f.enabled(schema.HydrateCommitFiles) {
		for i := range set.Commits {
			commit := &set.Commits[i]
			if commit.SHA == "" {
				continue
			}
			g.Go(func() error {
				detail, err := f.client.GetCommit(gctx, set.Repo, commit.SHA)
				if err != nil {
					return fmt.Errorf("fetch commit files: %w", err)
				}
				commit.Files = detail.Files
				return nil
			})
		}
	}

	return g.Wait()
}

// hydratePullRequest applies the pull request enrichments in sequence.
func (f *Fetcher) hydratePullRequest(ctx context.Context, repo schema.RepoRef, pr *schema.PullRequest) error {
	if f.enabled(schema.HydratePRDetails) {
		detail, err := f.client.GetPullRequest(ctx, repo, pr.Number)
		if err != nil {
			return fmt.Errorf("fetch pull request details: %w", err)
		}
		pr.Comments = detail.Comments
		pr.ReviewComments = detail.ReviewComments
		pr.ChangedFiles = detail.ChangedFiles
	}

	if f.enabled(schema.HydratePRCommits) && pr.IsMerged() {
		commits, err := collect[schema.Commit](ctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Commit, contract.PageInfo, error) {
			return f.client.ListPullRequestCommits(ctx, repo, pr.Number, page)
		})
		if err != nil {
			return fmt.Errorf("fetch pull request commits: %w", err)
		}
		dates := make([]time.Time, 0, len(commits))
		for _, c := range commits {
			if !c.Date.IsZero() {
				dates = append(dates, c.Date)
			}
		}
		pr.CommitDates = dates
	}

	if f.enabled(schema.HydrateReviews) {
		reviews, err := collect[schema.Review](ctx, f, func(ctx context.Context, page contract.PageRequest) ([]schema.Review, contract.PageInfo, error) {
			return f.client.ListPullRequestReviews(ctx, repo, pr.Number, page)
		})
		if err != nil {
			return fmt.Errorf("fetch reviews: %w", err)
		}
		pr.Reviews = len(reviews)
	}

	return nil
}

func (f *Fetcher) enabled(kind schema.HydrationKind) bool {
	return f.hydrates(kind)
}
