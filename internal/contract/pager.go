package contract

import "context"

// PageFunc fetches a single page of a list call.
type PageFunc[T any] func(ctx context.Context, page PageRequest) ([]T, PageInfo, error)

// Pager is a lazy, restartable sequence of pages over a list call.
// Nothing is fetched until Next or Collect is called.
type Pager[T any] struct {
	fetch    PageFunc[T]
	perPage  int
	maxPages int

	next    int
	fetched int
	done    bool
}

// NewPager creates a pager that requests perPage items per page and stops after maxPages.
// A maxPages of 0 or less means no page cap.
func NewPager[T any](fetch PageFunc[T], perPage, maxPages int) *Pager[T] {
	return &Pager[T]{
		fetch:    fetch,
		perPage:  perPage,
		maxPages: maxPages,
		next:     1,
	}
}

// Next fetches the next page. It returns false once the upstream reports no
// further pages or the page cap is reached.
func (p *Pager[T]) Next(ctx context.Context) ([]T, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if p.maxPages > 0 && p.fetched >= p.maxPages {
		p.done = true
		return nil, false, nil
	}

	items, info, err := p.fetch(ctx, PageRequest{Page: p.next, PerPage: p.perPage})
	if err != nil {
		return nil, false, err
	}
	p.fetched++
	if info.NextPage <= p.next {
		p.done = true
	} else {
		p.next = info.NextPage
	}
	return items, true, nil
}

// Collect drains the pager and returns every item fetched.
func (p *Pager[T]) Collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, items...)
	}
}

// Reset rewinds the pager to the first page.
func (p *Pager[T]) Reset() {
	p.next = 1
	p.fetched = 0
	p.done = false
}

// Pages returns how many pages have been fetched since the last reset.
func (p *Pager[T]) Pages() int {
	return p.fetched
}
