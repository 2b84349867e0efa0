package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/subreddit-insights/internal/analysis"
	"github.com/spacesedan/subreddit-insights/internal/models"
	"github.com/spacesedan/subreddit-insights/internal/report"
	"golang.org/x/sync/errgroup"
)

// Fetcher returns up to 100 posts of one listing, in listing order.
type Fetcher interface {
	FetchPosts(ctx context.Context, subreddit string, listing models.ListingType, window models.TimeWindow) ([]models.Post, error)
}

// Request describes one run. Secondary is nil when only one subreddit is analyzed.
type Request struct {
	Subreddit string
	Secondary *string
	Listing   models.ListingType
	Window    models.TimeWindow
}

type Runner struct {
	Fetcher Fetcher
	// NewScorer is called once per subreddit so parallel runs share no scorer state.
	NewScorer func() analysis.Scorer
	Parallel  bool
}

// Run fetches and analyzes the requested subreddits and merges the results. A failure
// for either subreddit aborts the whole run.
func (r *Runner) Run(ctx context.Context, req Request) (models.MergedReport, error) {
	start := time.Now()

	var primary models.PipelineResult
	var secondary *models.PipelineResult

	if req.Secondary == nil || !r.Parallel {
		var err error
		primary, err = r.analyze(ctx, req.Subreddit, req)
		if err != nil {
			return models.MergedReport{}, err
		}
		if req.Secondary != nil {
			result, err := r.analyze(ctx, *req.Secondary, req)
			if err != nil {
				return models.MergedReport{}, err
			}
			secondary = &result
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		var second models.PipelineResult

		g.Go(func() error {
			var err error
			primary, err = r.analyze(gctx, req.Subreddit, req)
			return err
		})
		g.Go(func() error {
			var err error
			second, err = r.analyze(gctx, *req.Secondary, req)
			return err
		})

		if err := g.Wait(); err != nil {
			return models.MergedReport{}, err
		}
		secondary = &second
	}

	slog.Info("[Pipeline] Analysis complete",
		slog.Bool("dual", secondary != nil),
		slog.Bool("parallel", r.Parallel && secondary != nil),
		slog.Duration("elapsed", time.Since(start)))

	return report.Merge(primary, secondary), nil
}

func (r *Runner) analyze(ctx context.Context, subreddit string, req Request) (models.PipelineResult, error) {
	window := req.Window
	if !req.Listing.TakesTimeWindow() {
		window = ""
	}

	posts, err := r.Fetcher.FetchPosts(ctx, subreddit, req.Listing, window)
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("fetch r/%s: %w", subreddit, err)
	}

	return analysis.Analyze(subreddit, posts, r.NewScorer())
}
