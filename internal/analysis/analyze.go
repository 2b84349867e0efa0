package analysis

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

// Analyze derives the three views for one subreddit. Any failure is fatal for the
// subreddit; records are never skipped.
func Analyze(subreddit string, posts []models.Post, scorer Scorer) (models.PipelineResult, error) {
	times := PostingTimes(posts)
	profile := ProfileFromTimes(times)
	words, weights := Frequencies(posts)

	records, dist, err := ScoreSentiment(posts, scorer)
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("r/%s: %w", subreddit, err)
	}

	slog.Info("[Analysis] Subreddit analyzed",
		slog.String("subreddit", subreddit),
		slog.Int("posts", len(posts)),
		slog.Int("hours", len(profile)),
		slog.Int("words", len(words)),
		slog.Float64("positive_pct", dist.PercentPositive))

	return models.PipelineResult{
		Subreddit:    subreddit,
		PostCount:    len(posts),
		PostingTimes: times,
		Profile:      profile,
		Words:        words,
		WordWeights:  weights,
		Sentiment:    records,
		Distribution: dist,
	}, nil
}
