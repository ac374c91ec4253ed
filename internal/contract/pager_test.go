package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages serves three pages of two items each and records requests.
type fakePages struct {
	requests []PageRequest
	failOn   int
}

func (f *fakePages) fetch(_ context.Context, page PageRequest) ([]int, PageInfo, error) {
	f.requests = append(f.requests, page)
	if f.failOn == page.Page {
		return nil, PageInfo{}, errors.New("upstream down")
	}
	items := []int{page.Page*10 + 1, page.Page*10 + 2}
	next := page.Page + 1
	if page.Page >= 3 {
		next = 0
	}
	return items, PageInfo{NextPage: next}, nil
}

func TestPagerIsLazy(t *testing.T) {
	f := &fakePages{}
	_ = NewPager[int](f.fetch, 100, 1)
	assert.Empty(t, f.requests, "constructing a pager must not fetch")
}

func TestPagerSinglePageDefault(t *testing.T) {
	f := &fakePages{}
	p := NewPager[int](f.fetch, 100, 1)

	items, err := p.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12}, items)
	assert.Equal(t, []PageRequest{{Page: 1, PerPage: 100}}, f.requests)
	assert.Equal(t, 1, p.Pages())
}

func TestPagerFollowsNextPageUntilLast(t *testing.T) {
	f := &fakePages{}
	p := NewPager[int](f.fetch, 2, 0)

	items, err := p.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 21, 22, 31, 32}, items)
	assert.Len(t, f.requests, 3)

	_, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "exhausted pager stays exhausted")
	assert.Len(t, f.requests, 3)
}

func TestPagerStopsAtMaxPages(t *testing.T) {
	f := &fakePages{}
	p := NewPager[int](f.fetch, 2, 2)

	items, err := p.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 21, 22}, items)
	assert.Len(t, f.requests, 2)
}

func TestPagerReset(t *testing.T) {
	f := &fakePages{}
	p := NewPager[int](f.fetch, 2, 1)

	first, err := p.Collect(context.Background())
	require.NoError(t, err)

	p.Reset()
	assert.Zero(t, p.Pages())
	again, err := p.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, 1, f.requests[1].Page, "reset restarts from page 1")
}

func TestPagerPropagatesErrors(t *testing.T) {
	f := &fakePages{failOn: 2}
	p := NewPager[int](f.fetch, 2, 0)

	items, err := p.Collect(context.Background())
	require.Error(t, err)
	assert.Nil(t, items, "no partial results on failure")
}
