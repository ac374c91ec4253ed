package schema

import (
	"fmt"
	"time"
)

// RepoRef identifies a hosted repository.
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// String returns the owner/name form of the reference.
func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Commit is a single commit as returned by the repository API.
type Commit struct {
	SHA        string    `json:"sha"`
	Author     string    `json:"author"` // account login, empty when unresolvable
	AuthorName string    `json:"author_name"`
	Date       time.Time `json:"date"`
	Message    string    `json:"message"`
	Files      []string  `json:"files,omitempty"` // only populated by commit-files hydration
}

// PullRequest is a single pull request as returned by the repository API.
type PullRequest struct {
	Number         int         `json:"number"`
	Author         string      `json:"author"`
	Title          string      `json:"title"`
	State          string      `json:"state"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	ClosedAt       *time.Time  `json:"closed_at,omitempty"`
	MergedAt       *time.Time  `json:"merged_at,omitempty"`
	BaseSHA        string      `json:"base_sha"`
	HeadSHA        string      `json:"head_sha"`
	Comments       int         `json:"comments"`
	ReviewComments int         `json:"review_comments"`
	Reviews        int         `json:"reviews"`
	ChangedFiles   int         `json:"changed_files"`
	CommitDates    []time.Time `json:"commit_dates,omitempty"`
}

// IsMerged reports whether the pull request has been merged.
func (pr PullRequest) IsMerged() bool {
	return pr.MergedAt != nil && !pr.MergedAt.IsZero()
}

// Issue is a single issue as returned by the repository API.
type Issue struct {
	Number        int        `json:"number"`
	Author        string     `json:"author"`
	State         string     `json:"state"`
	Labels        []string   `json:"labels"`
	CreatedAt     time.Time  `json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	IsPullRequest bool       `json:"is_pull_request"`
}

// IsClosed reports whether the issue is closed with a known close time.
func (i Issue) IsClosed() bool {
	return i.State == "closed" && i.ClosedAt != nil && !i.ClosedAt.IsZero()
}

// Deployment is a single deployment as returned by the repository API.
type Deployment struct {
	ID          int64     `json:"id"`
	SHA         string    `json:"sha"`
	Environment string    `json:"environment"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
}

// Contributor is a repository contributor account.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// Review is a single pull request review.
type Review struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RecordSet holds one collection per record kind for a single window.
type RecordSet struct {
	Repo         RepoRef       `json:"repo"`
	Window       TimeWindow    `json:"window"`
	Commits      []Commit      `json:"commits"`
	PullRequests []PullRequest `json:"pull_requests"`
	Issues       []Issue       `json:"issues"`
	Deployments  []Deployment  `json:"deployments"`
	Contributors []Contributor `json:"contributors"`
}
