package agg

import (
	"math"
	"time"

	"github.com/huangsam/doralens/schema"
)

// Neutral values for empty denominators.
const (
	defaultCodeQuality = 100.0
	maxCollaboration   = 100.0
	reviewScale        = 20.0
)

// mean returns the average of values, or fallback when there are none.
func mean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return fallback
	}
	return avg
}

// deploymentFrequency is events per week over the window.
func deploymentFrequency(w windowed, window schema.TimeWindow, source schema.DeploymentSource) float64 {
	weeks := window.Weeks()
	if weeks <= 0 {
		return 0
	}
	events := len(w.qualifying)
	if source == schema.DeploymentsSource {
		events = len(w.deployments)
	}
	return float64(events) / weeks
}

// leadTime is the mean hours from first commit to merge.
func leadTime(qualifying []schema.PullRequest, shaDates map[string]time.Time) float64 {
	hours := make([]float64, 0, len(qualifying))
	for _, pr := range qualifying {
		first := firstCommit(pr, shaDates)
		hours = append(hours, pr.MergedAt.Sub(first).Hours())
	}
	return mean(hours, 0)
}

// firstCommit resolves the start of a pull request's lead time. Hydrated
// commit dates win, then the fetched commit matching the base, then creation.
func firstCommit(pr schema.PullRequest, shaDates map[string]time.Time) time.Time {
	var earliest time.Time
	for _, d := range pr.CommitDates {
		if d.IsZero() {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	if !earliest.IsZero() {
		return earliest
	}
	if d, ok := shaDates[pr.BaseSHA]; ok && pr.BaseSHA != "" {
		return d
	}
	return pr.CreatedAt
}

// timeToRestore is the mean hours a defect stayed open.
func timeToRestore(defectsClosed []schema.Issue) float64 {
	hours := make([]float64, 0, len(defectsClosed))
	for _, i := range defectsClosed {
		hours = append(hours, i.ClosedAt.Sub(i.CreatedAt).Hours())
	}
	return mean(hours, 0)
}

// changeFailureRate is failures as a percentage of merged pull requests.
func changeFailureRate(w windowed, signal schema.FailureSignal) float64 {
	if len(w.qualifying) == 0 {
		return 0
	}
	failures := len(w.defectsCreated)
	if signal == schema.RevertsSignal {
		failures = 0
		for _, pr := range w.qualifying {
			if pr.IsRevert() {
				failures++
			}
		}
	}
	return 100 * float64(failures) / float64(len(w.qualifying))
}

// codeQuality penalizes review comment volume on merged pull requests.
// It has no floor.
func codeQuality(prs []schema.PullRequest) float64 {
	comments := make([]float64, 0, len(prs))
	for _, pr := range prs {
		comments = append(comments, float64(pr.ReviewComments))
	}
	return defaultCodeQuality - mean(comments, 0)
}

// groupedCollaboration sums review comments across a contributor's merged pull requests.
func groupedCollaboration(prs []schema.PullRequest) float64 {
	var sum int
	for _, pr := range prs {
		sum += pr.ReviewComments
	}
	return float64(sum)
}

// aggregateCollaboration scales the mean review count into 0..100.
func aggregateCollaboration(prs []schema.PullRequest) float64 {
	reviews := make([]float64, 0, len(prs))
	for _, pr := range prs {
		reviews = append(reviews, float64(pr.Reviews))
	}
	return math.Min(mean(reviews, 0)*reviewScale, maxCollaboration)
}

// distinctFiles counts unique paths touched by the commits.
func distinctFiles(commits []schema.Commit) int {
	files := make(map[string]struct{})
	for _, c := range commits {
		for _, f := range c.Files {
			files[f] = struct{}{}
		}
	}
	return len(files)
}
