package agg

import (
	"time"

	"github.com/huangsam/doralens/schema"
)

// windowed holds the records of a set that fall inside its window,
// already split by the role they play in the formulas.
type windowed struct {
	commits        []schema.Commit      // authored in the window
	windowPRs      []schema.PullRequest // created or merged in the window
	qualifying     []schema.PullRequest // merged in the window
	deployments    []schema.Deployment  // created in the window
	issues         []schema.Issue       // created or closed in the window
	closedIssues   []schema.Issue       // closed in the window
	defectsClosed  []schema.Issue       // defect issues closed in the window
	defectsCreated []schema.Issue       // defect issues created in the window
}

// partition filters the record set into its window. Pull requests listed
// as issues are dropped.
func partition(set schema.RecordSet, defectLabel string) windowed {
	window := set.Window
	var w windowed

	for _, c := range set.Commits {
		if window.Contains(c.Date) {
			w.commits = append(w.commits, c)
		}
	}

	for _, pr := range set.PullRequests {
		merged := pr.IsMerged() && window.ContainsPtr(pr.MergedAt)
		if merged {
			w.qualifying = append(w.qualifying, pr)
		}
		if merged || window.Contains(pr.CreatedAt) {
			w.windowPRs = append(w.windowPRs, pr)
		}
	}

	for _, d := range set.Deployments {
		if window.Contains(d.CreatedAt) {
			w.deployments = append(w.deployments, d)
		}
	}

	for _, i := range set.Issues {
		if i.IsPullRequest {
			continue
		}
		created := window.Contains(i.CreatedAt)
		closed := i.IsClosed() && window.ContainsPtr(i.ClosedAt)
		if !created && !closed {
			continue
		}
		w.issues = append(w.issues, i)
		defect := i.HasLabel(defectLabel)
		if closed {
			w.closedIssues = append(w.closedIssues, i)
			if defect {
				w.defectsClosed = append(w.defectsClosed, i)
			}
		}
		if created && defect {
			w.defectsCreated = append(w.defectsCreated, i)
		}
	}

	return w
}

// forAuthor narrows the windowed records to one login.
func (w windowed) forAuthor(login string) windowed {
	return windowed{
		commits:        filter(w.commits, func(c schema.Commit) bool { return c.Author == login }),
		windowPRs:      filter(w.windowPRs, func(pr schema.PullRequest) bool { return pr.Author == login }),
		qualifying:     filter(w.qualifying, func(pr schema.PullRequest) bool { return pr.Author == login }),
		deployments:    filter(w.deployments, func(d schema.Deployment) bool { return d.Creator == login }),
		issues:         filter(w.issues, func(i schema.Issue) bool { return i.Author == login }),
		closedIssues:   filter(w.closedIssues, func(i schema.Issue) bool { return i.Author == login }),
		defectsClosed:  filter(w.defectsClosed, func(i schema.Issue) bool { return i.Author == login }),
		defectsCreated: filter(w.defectsCreated, func(i schema.Issue) bool { return i.Author == login }),
	}
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// commitDatesBySHA indexes commit dates for first-commit resolution.
func commitDatesBySHA(commits []schema.Commit) map[string]time.Time {
	dates := make(map[string]time.Time, len(commits))
	for _, c := range commits {
		if c.SHA != "" && !c.Date.IsZero() {
			dates[c.SHA] = c.Date
		}
	}
	return dates
}
