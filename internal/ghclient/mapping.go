package ghclient

import (
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/huangsam/doralens/schema"
)

// mapAll converts every non-nil upstream item.
func mapAll[S any, T any](items []*S, convert func(*S) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, convert(item))
	}
	return out
}

// optionalTime converts a nullable upstream timestamp.
func optionalTime(ts *github.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}

func toCommit(rc *github.RepositoryCommit) schema.Commit {
	commit := schema.Commit{
		SHA:        rc.GetSHA(),
		Author:     rc.GetAuthor().GetLogin(),
		AuthorName: rc.GetCommit().GetAuthor().GetName(),
		Date:       rc.GetCommit().GetAuthor().GetDate().Time,
		Message:    rc.GetCommit().GetMessage(),
	}
	for _, f := range rc.Files {
		if name := f.GetFilename(); name != "" {
			commit.Files = append(commit.Files, name)
		}
	}
	return commit
}

func toPullRequest(pr *github.PullRequest) schema.PullRequest {
	return schema.PullRequest{
		Number:         pr.GetNumber(),
		Author:         pr.GetUser().GetLogin(),
		Title:          pr.GetTitle(),
		State:          pr.GetState(),
		CreatedAt:      pr.GetCreatedAt().Time,
		UpdatedAt:      pr.GetUpdatedAt().Time,
		ClosedAt:       optionalTime(pr.ClosedAt),
		MergedAt:       optionalTime(pr.MergedAt),
		BaseSHA:        pr.GetBase().GetSHA(),
		HeadSHA:        pr.GetHead().GetSHA(),
		Comments:       pr.GetComments(),
		ReviewComments: pr.GetReviewComments(),
		ChangedFiles:   pr.GetChangedFiles(),
	}
}

func toIssue(i *github.Issue) schema.Issue {
	issue := schema.Issue{
		Number:        i.GetNumber(),
		Author:        i.GetUser().GetLogin(),
		State:         i.GetState(),
		CreatedAt:     i.GetCreatedAt().Time,
		ClosedAt:      optionalTime(i.ClosedAt),
		IsPullRequest: i.IsPullRequest(),
	}
	for _, l := range i.Labels {
		issue.Labels = append(issue.Labels, l.GetName())
	}
	return issue
}

func toDeployment(d *github.Deployment) schema.Deployment {
	return schema.Deployment{
		ID:          d.GetID(),
		SHA:         d.GetSHA(),
		Environment: d.GetEnvironment(),
		Creator:     d.GetCreator().GetLogin(),
		CreatedAt:   d.GetCreatedAt().Time,
	}
}

func toContributor(c *github.Contributor) schema.Contributor {
	return schema.Contributor{
		Login:         c.GetLogin(),
		Contributions: c.GetContributions(),
	}
}

func toReview(r *github.PullRequestReview) schema.Review {
	return schema.Review{
		ID:          r.GetID(),
		Author:      r.GetUser().GetLogin(),
		State:       r.GetState(),
		SubmittedAt: r.GetSubmittedAt().Time,
	}
}
