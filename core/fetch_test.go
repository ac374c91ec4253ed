package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testRepo  = schema.RepoRef{Owner: "acme", Name: "widgets"}
	weekStart = time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC) // Sunday
	testWeek  = schema.TimeWindow{From: weekStart, To: weekStart.AddDate(0, 0, 7)}
	firstPage = contract.PageRequest{Page: 1, PerPage: 100}
)

func at(day, hour int) time.Time {
	return weekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
}

func ptr(t time.Time) *time.Time { return &t }

// testConfig returns a validated-looking config for the test week.
func testConfig() *contract.Config {
	return &contract.Config{
		Repo:             testRepo,
		Window:           testWeek,
		Days:             7,
		Weeks:            4,
		PerPage:          100,
		MaxPages:         1,
		Workers:          2,
		Hydrate:          map[schema.HydrationKind]bool{},
		DeploymentSource: schema.AutoSource,
		FailureSignal:    schema.DefectsSignal,
		DefectLabel:      "bug",
		Output:           schema.JSONOut,
		Precision:        1,
	}
}

func TestFetchWindowJoinsAndFilters(t *testing.T) {
	client := &contract.MockRepoClient{}
	client.On("ListCommits", mock.Anything, testRepo, testWeek, firstPage).Return([]schema.Commit{
		{SHA: "c1", Author: "alice", Date: at(1, 0)},
	}, contract.PageInfo{}, nil)
	client.On("ListPullRequests", mock.Anything, testRepo, firstPage).Return([]schema.PullRequest{
		{Number: 1, Author: "alice", CreatedAt: at(1, 0), MergedAt: ptr(at(1, 5))},
		{Number: 2, Author: "bob", CreatedAt: at(-20, 0), MergedAt: ptr(at(-19, 0))},
		{Number: 3, Author: "bob", CreatedAt: at(-3, 0), MergedAt: ptr(at(2, 0))},
	}, contract.PageInfo{}, nil)
	client.On("ListIssues", mock.Anything, testRepo, testWeek.From, firstPage).Return([]schema.Issue{
		{Number: 10, Author: "alice", State: "open", CreatedAt: at(2, 0)},
		{Number: 11, Author: "alice", State: "closed", CreatedAt: at(0, 0), ClosedAt: ptr(at(0, 1)), IsPullRequest: true},
		{Number: 12, Author: "carol", State: "closed", CreatedAt: at(-10, 0), ClosedAt: ptr(at(3, 0))},
	}, contract.PageInfo{}, nil)
	client.On("ListDeployments", mock.Anything, testRepo, firstPage).Return([]schema.Deployment{
		{ID: 1, Creator: "alice", CreatedAt: at(1, 0)},
		{ID: 2, Creator: "alice", CreatedAt: at(9, 0)},
	}, contract.PageInfo{}, nil)
	client.On("ListContributors", mock.Anything, testRepo, firstPage).Return([]schema.Contributor{
		{Login: "alice", Contributions: 10},
	}, contract.PageInfo{}, nil)

	set, err := NewFetcher(client, testConfig()).FetchWindow(context.Background(), testRepo, testWeek)
	require.NoError(t, err)

	assert.Equal(t, testRepo, set.Repo)
	assert.Equal(t, testWeek, set.Window)
	assert.Len(t, set.Commits, 1)

	var prNumbers []int
	for _, pr := range set.PullRequests {
		prNumbers = append(prNumbers, pr.Number)
	}
	assert.Equal(t, []int{1, 3}, prNumbers, "created or merged in window")

	var issueNumbers []int
	for _, i := range set.Issues {
		issueNumbers = append(issueNumbers, i.Number)
	}
	assert.Equal(t, []int{10, 12}, issueNumbers, "pull requests listed as issues are dropped")

	require.Len(t, set.Deployments, 1)
	assert.Equal(t, int64(1), set.Deployments[0].ID)
	assert.Len(t, set.Contributors, 1)

	client.AssertExpectations(t)
}

func TestFetchWindowFailsAsOne(t *testing.T) {
	client := &contract.MockRepoClient{}
	client.On("ListCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, contract.PageInfo{}, errors.New("401 Bad credentials"))
	client.StubEmpty()

	set, err := NewFetcher(client, testConfig()).FetchWindow(context.Background(), testRepo, testWeek)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch commits: 401 Bad credentials")
	assert.Equal(t, schema.RecordSet{}, set, "no partial record set")
}

func TestFetchWindowFollowsPages(t *testing.T) {
	cfg := testConfig()
	cfg.PerPage = 2
	cfg.MaxPages = 3

	client := &contract.MockRepoClient{}
	client.On("ListContributors", mock.Anything, testRepo, contract.PageRequest{Page: 1, PerPage: 2}).
		Return([]schema.Contributor{{Login: "a"}, {Login: "b"}}, contract.PageInfo{NextPage: 2}, nil).Once()
	client.On("ListContributors", mock.Anything, testRepo, contract.PageRequest{Page: 2, PerPage: 2}).
		Return([]schema.Contributor{{Login: "c"}}, contract.PageInfo{}, nil).Once()
	client.StubEmpty()

	set, err := NewFetcher(client, cfg).FetchWindow(context.Background(), testRepo, testWeek)
	require.NoError(t, err)
	assert.Equal(t, []schema.Contributor{{Login: "a"}, {Login: "b"}, {Login: "c"}}, set.Contributors)
	client.AssertNumberOfCalls(t, "ListContributors", 2)
}

func TestFetchWindowSinglePageByDefault(t *testing.T) {
	client := &contract.MockRepoClient{}
	client.On("ListContributors", mock.Anything, testRepo, firstPage).
		Return([]schema.Contributor{{Login: "a"}}, contract.PageInfo{NextPage: 2}, nil).Once()
	client.StubEmpty()

	set, err := NewFetcher(client, testConfig()).FetchWindow(context.Background(), testRepo, testWeek)
	require.NoError(t, err)
	assert.Len(t, set.Contributors, 1)
	client.AssertNumberOfCalls(t, "ListContributors", 1)
}

func TestFetchWindowHydrates(t *testing.T) {
	cfg := testConfig()
	cfg.Hydrate, _ = schema.ParseHydrationKinds("all")

	client := &contract.MockRepoClient{}
	client.On("ListCommits", mock.Anything, testRepo, testWeek, firstPage).Return([]schema.Commit{
		{SHA: "c1", Author: "alice", Date: at(1, 0)},
	}, contract.PageInfo{}, nil)
	client.On("ListPullRequests", mock.Anything, testRepo, firstPage).Return([]schema.PullRequest{
		{Number: 7, Author: "alice", CreatedAt: at(1, 0), MergedAt: ptr(at(2, 0))},
		{Number: 8, Author: "bob", CreatedAt: at(3, 0)},
	}, contract.PageInfo{}, nil)
	client.On("GetPullRequest", mock.Anything, testRepo, 7).Return(schema.PullRequest{Number: 7, Comments: 1, ReviewComments: 4, ChangedFiles: 3}, nil)
	client.On("GetPullRequest", mock.Anything, testRepo, 8).Return(schema.PullRequest{Number: 8, ReviewComments: 2}, nil)
	client.On("ListPullRequestCommits", mock.Anything, testRepo, 7, firstPage).Return([]schema.Commit{
		{SHA: "p2", Date: at(0, 12)},
		{SHA: "p1", Date: at(0, 6)},
	}, contract.PageInfo{}, nil)
	client.On("ListPullRequestReviews", mock.Anything, testRepo, 7, firstPage).Return([]schema.Review{{ID: 1}, {ID: 2}}, contract.PageInfo{}, nil)
	client.On("ListPullRequestReviews", mock.Anything, testRepo, 8, firstPage).Return([]schema.Review{}, contract.PageInfo{}, nil)
	client.On("GetCommit", mock.Anything, testRepo, "c1").Return(schema.Commit{SHA: "c1", Files: []string{"a.go", "b.go"}}, nil)
	client.StubEmpty()

	set, err := NewFetcher(client, cfg).FetchWindow(context.Background(), testRepo, testWeek)
	require.NoError(t, err)

	require.Len(t, set.PullRequests, 2)
	merged := set.PullRequests[0]
	assert.Equal(t, 4, merged.ReviewComments)
	assert.Equal(t, 3, merged.ChangedFiles)
	assert.Equal(t, 2, merged.Reviews)
	assert.Equal(t, []time.Time{at(0, 12), at(0, 6)}, merged.CommitDates)

	open := set.PullRequests[1]
	assert.Equal(t, 2, open.ReviewComments)
	assert.Empty(t, open.CommitDates, "open pull requests have no lead time to resolve")

	require.Len(t, set.Commits, 1)
	assert.Equal(t, []string{"a.go", "b.go"}, set.Commits[0].Files)

	client.AssertNotCalled(t, "ListPullRequestCommits", mock.Anything, testRepo, 8, mock.Anything)
}

func TestFetchWindowHydrationFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Hydrate = map[schema.HydrationKind]bool{schema.HydrateReviews: true}

	client := &contract.MockRepoClient{}
	client.On("ListPullRequests", mock.Anything, testRepo, firstPage).Return([]schema.PullRequest{
		{Number: 7, Author: "alice", CreatedAt: at(1, 0)},
	}, contract.PageInfo{}, nil)
	client.On("ListPullRequestReviews", mock.Anything, testRepo, 7, firstPage).Return(nil, contract.PageInfo{}, errors.New("rate limited"))
	client.StubEmpty()

	_, err := NewFetcher(client, cfg).FetchWindow(context.Background(), testRepo, testWeek)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch reviews: rate limited")
	client.AssertNotCalled(t, "GetPullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(&contract.MockRepoClient{}, &contract.Config{})
	assert.Equal(t, contract.DefaultPerPage, f.perPage)
	assert.Equal(t, contract.DefaultMaxPages, f.maxPages)
	assert.Equal(t, 1, f.workers)
}
