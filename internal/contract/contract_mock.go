package contract

import (
	"context"
	"time"

	"github.com/huangsam/doralens/schema"
	"github.com/stretchr/testify/mock"
)

// MockRepoClient is a mock implementation of RepoClient for testing.
type MockRepoClient struct {
	mock.Mock
}

var _ RepoClient = &MockRepoClient{} // Compile-time check

// ListCommits implements the RepoClient interface.
func (m *MockRepoClient) ListCommits(ctx context.Context, repo schema.RepoRef, window schema.TimeWindow, page PageRequest) ([]schema.Commit, PageInfo, error) {
	ret := m.Called(ctx, repo, window, page)
	commits, _ := ret.Get(0).([]schema.Commit)
	info, _ := ret.Get(1).(PageInfo)
	return commits, info, ret.Error(2)
}

// ListPullRequests implements the RepoClient interface.
func (m *MockRepoClient) ListPullRequests(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.PullRequest, PageInfo, error) {
	ret := m.Called(ctx, repo, page)
	prs, _ := ret.Get(0).([]schema.PullRequest)
	info, _ := ret.Get(1).(PageInfo)
	return prs, info, ret.Error(2)
}

// ListIssues implements the RepoClient interface.
func (m *MockRepoClient) ListIssues(ctx context.Context, repo schema.RepoRef, since time.Time, page PageRequest) ([]schema.Issue, PageInfo, error) {
	ret := m.Called(ctx, repo, since, page)
	issues, _ := ret.Get(0).([]schema.Issue)
	info, _ := ret.Get(1).(PageInfo)
	return issues, info, ret.Error(2)
}

// ListDeployments implements the RepoClient interface.
func (m *MockRepoClient) ListDeployments(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.Deployment, PageInfo, error) {
	ret := m.Called(ctx, repo, page)
	deployments, _ := ret.Get(0).([]schema.Deployment)
	info, _ := ret.Get(1).(PageInfo)
	return deployments, info, ret.Error(2)
}

// ListContributors implements the RepoClient interface.
func (m *MockRepoClient) ListContributors(ctx context.Context, repo schema.RepoRef, page PageRequest) ([]schema.Contributor, PageInfo, error) {
	ret := m.Called(ctx, repo, page)
	contributors, _ := ret.Get(0).([]schema.Contributor)
	info, _ := ret.Get(1).(PageInfo)
	return contributors, info, ret.Error(2)
}

// ListPullRequestCommits implements the RepoClient interface.
func (m *MockRepoClient) ListPullRequestCommits(ctx context.Context, repo schema.RepoRef, number int, page PageRequest) ([]schema.Commit, PageInfo, error) {
	ret := m.Called(ctx, repo, number, page)
	commits, _ := ret.Get(0).([]schema.Commit)
	info, _ := ret.Get(1).(PageInfo)
	return commits, info, ret.Error(2)
}

// ListPullRequestReviews implements the RepoClient interface.
func (m *MockRepoClient) ListPullRequestReviews(ctx context.Context, repo schema.RepoRef, number int, page PageRequest) ([]schema.Review, PageInfo, error) {
	ret := m.Called(ctx, repo, number, page)
	reviews, _ := ret.Get(0).([]schema.Review)
	info, _ := ret.Get(1).(PageInfo)
	return reviews, info, ret.Error(2)
}

// GetPullRequest implements the RepoClient interface.
func (m *MockRepoClient) GetPullRequest(ctx context.Context, repo schema.RepoRef, number int) (schema.PullRequest, error) {
	ret := m.Called(ctx, repo, number)
	pr, _ := ret.Get(0).(schema.PullRequest)
	return pr, ret.Error(1)
}

// GetCommit implements the RepoClient interface.
func (m *MockRepoClient) GetCommit(ctx context.Context, repo schema.RepoRef, sha string) (schema.Commit, error) {
	ret := m.Called(ctx, repo, sha)
	commit, _ := ret.Get(0).(schema.Commit)
	return commit, ret.Error(1)
}

// StubEmpty registers catch-all expectations that return empty pages for every
// window-scoped listing. Individual expectations registered before it take precedence.
func (m *MockRepoClient) StubEmpty() *MockRepoClient {
	m.On("ListCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]schema.Commit{}, PageInfo{}, nil).Maybe()
	m.On("ListPullRequests", mock.Anything, mock.Anything, mock.Anything).Return([]schema.PullRequest{}, PageInfo{}, nil).Maybe()
	m.On("ListIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]schema.Issue{}, PageInfo{}, nil).Maybe()
	m.On("ListDeployments", mock.Anything, mock.Anything, mock.Anything).Return([]schema.Deployment{}, PageInfo{}, nil).Maybe()
	m.On("ListContributors", mock.Anything, mock.Anything, mock.Anything).Return([]schema.Contributor{}, PageInfo{}, nil).Maybe()
	return m
}
