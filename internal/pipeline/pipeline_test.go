package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spacesedan/subreddit-insights/internal/analysis"
	"github.com/spacesedan/subreddit-insights/internal/clients"
	"github.com/spacesedan/subreddit-insights/internal/models"
)

type fakeFetcher struct {
	posts map[string][]models.Post
	errs  map[string]error

	mu      sync.Mutex
	windows map[string]models.TimeWindow
}

func (f *fakeFetcher) FetchPosts(_ context.Context, subreddit string, _ models.ListingType, window models.TimeWindow) ([]models.Post, error) {
	f.mu.Lock()
	if f.windows == nil {
		f.windows = make(map[string]models.TimeWindow)
	}
	f.windows[subreddit] = window
	f.mu.Unlock()

	if err := f.errs[subreddit]; err != nil {
		return nil, err
	}
	return f.posts[subreddit], nil
}

type zeroScorer struct{}

func (zeroScorer) Compound(string) float64         { return 0 }
func (zeroScorer) MarkdownCompound(string) float64 { return 0 }

func newRunner(f Fetcher, parallel bool) *Runner {
	return &Runner{
		Fetcher:   f,
		NewScorer: func() analysis.Scorer { return zeroScorer{} },
		Parallel:  parallel,
	}
}

func samplePosts(title string) []models.Post {
	return []models.Post{
		{Title: title, Score: 5, CreatedUTC: 1704085200},
		{Title: title + " again", Score: 15, CreatedUTC: 1704085200},
	}
}

func strPtr(s string) *string { return &s }

func TestRunner_Single(t *testing.T) {
	fetcher := &fakeFetcher{posts: map[string][]models.Post{"golang": samplePosts("gopher")}}

	merged, err := newRunner(fetcher, false).Run(context.Background(), Request{
		Subreddit: "golang",
		Listing:   models.ListingHot,
		Window:    models.WindowWeek,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if merged.IsDual() {
		t.Error("expected single-subreddit report")
	}
	if merged.Primary.Subreddit != "golang" || merged.Primary.Profile[5] != 10 {
		t.Errorf("primary = %+v", merged.Primary)
	}
	if w := fetcher.windows["golang"]; w.IsSet() {
		t.Errorf("hot listing should not send a window, sent %q", w)
	}
}

func TestRunner_Dual(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		fetcher := &fakeFetcher{posts: map[string][]models.Post{
			"golang": samplePosts("gopher"),
			"rust":   samplePosts("crab"),
		}}

		merged, err := newRunner(fetcher, parallel).Run(context.Background(), Request{
			Subreddit: "golang",
			Secondary: strPtr("rust"),
			Listing:   models.ListingTop,
			Window:    models.WindowMonth,
		})
		if err != nil {
			t.Fatalf("parallel=%v: Run() error = %v", parallel, err)
		}

		if !merged.IsDual() || merged.Primary.Subreddit != "golang" || merged.Secondary.Subreddit != "rust" {
			t.Errorf("parallel=%v: merged = %q / %+v", parallel, merged.Primary.Subreddit, merged.Secondary)
		}
		if merged.Secondary.Words[0].Word != "crab" {
			t.Errorf("parallel=%v: secondary words = %+v", parallel, merged.Secondary.Words)
		}
		if fetcher.windows["rust"] != models.WindowMonth {
			t.Errorf("parallel=%v: top listing window = %q", parallel, fetcher.windows["rust"])
		}
	}
}

func TestRunner_Failures(t *testing.T) {
	tests := []struct {
		name     string
		fetcher  *fakeFetcher
		parallel bool
		want     error
	}{
		{
			name:    "primary not found",
			fetcher: &fakeFetcher{errs: map[string]error{"golang": clients.ErrSubredditNotFound}},
			want:    clients.ErrSubredditNotFound,
		},
		{
			name: "secondary auth failure",
			fetcher: &fakeFetcher{
				posts: map[string][]models.Post{"golang": samplePosts("gopher")},
				errs:  map[string]error{"rust": clients.ErrAuthFailure},
			},
			want: clients.ErrAuthFailure,
		},
		{
			name: "secondary auth failure in parallel",
			fetcher: &fakeFetcher{
				posts: map[string][]models.Post{"golang": samplePosts("gopher")},
				errs:  map[string]error{"rust": clients.ErrAuthFailure},
			},
			parallel: true,
			want:     clients.ErrAuthFailure,
		},
		{
			name:    "secondary empty",
			fetcher: &fakeFetcher{posts: map[string][]models.Post{"golang": samplePosts("gopher")}},
			want:    analysis.ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRunner(tt.fetcher, tt.parallel).Run(context.Background(), Request{
				Subreddit: "golang",
				Secondary: strPtr("rust"),
				Listing:   models.ListingNew,
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}
