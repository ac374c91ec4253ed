package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/doralens/core/agg"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
	"golang.org/x/sync/errgroup"
)

// TrendWeeks returns the n calendar weeks ending with the week containing
// anchor, oldest first.
func TrendWeeks(anchor time.Time, n int) []schema.TimeWindow {
	if n <= 0 {
		return nil
	}
	current := schema.WeekOf(anchor)
	weeks := make([]schema.TimeWindow, n)
	for i := range n {
		from := current.From.AddDate(0, 0, -7*(n-1-i))
		weeks[i] = schema.TimeWindow{From: from, To: from.AddDate(0, 0, 7)}
	}
	return weeks
}

// runTrends computes one point per week. Weeks run one at a time unless
// cfg.Parallel is set, in which case each goroutine owns one slot of the result.
func runTrends(ctx context.Context, cfg *contract.Config, fetcher *Fetcher, weeks []schema.TimeWindow, p *progress) ([]schema.TrendPoint, error) {
	opts := agg.OptionsFromConfig(cfg)
	points := make([]schema.TrendPoint, len(weeks))

	if !cfg.Parallel {
		for i, week := range weeks {
			p.update("Fetching week of %s (%d/%d)", week.Label(), i+1, len(weeks))
			point, err := trendPoint(ctx, cfg.Repo, fetcher, week, opts)
			if err != nil {
				return nil, err
			}
			points[i] = point
		}
		return points, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, week := range weeks {
		g.Go(func() error {
			point, err := trendPoint(gctx, cfg.Repo, fetcher, week, opts)
			if err != nil {
				return err
			}
			points[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// trendPoint runs the fetch and aggregate pipeline for one isolated week.
func trendPoint(ctx context.Context, repo schema.RepoRef, fetcher *Fetcher, week schema.TimeWindow, opts agg.Options) (schema.TrendPoint, error) {
	set, err := fetcher.FetchWindow(ctx, repo, week)
	if err != nil {
		return schema.TrendPoint{}, fmt.Errorf("week of %s: %w", week.Label(), err)
	}

	contributors := make(map[string]schema.MetricSet)
	for _, c := range agg.ByContributor(set, opts) {
		contributors[c.Name] = c.MetricSet
	}
	return schema.TrendPoint{
		Label:        week.Label(),
		Window:       week,
		Aggregate:    agg.Aggregate(set, opts),
		Contributors: contributors,
	}, nil
}
