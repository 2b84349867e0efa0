package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

var ErrInsufficientData = errors.New("insufficient data")

// Scorer returns a compound polarity in [-1, 1]. Blank text must score 0.
type Scorer interface {
	Compound(text string) float64
	MarkdownCompound(body string) float64
}

// ScoreSentiment scores title and body separately, averages them, and returns the
// records ordered by descending combined score along with the polarity split. A post
// without a body counts its missing body as a neutral half.
func ScoreSentiment(posts []models.Post, scorer Scorer) ([]models.SentimentRecord, models.PolarityDistribution, error) {
	records := make([]models.SentimentRecord, 0, len(posts))
	for _, post := range posts {
		title := scorer.Compound(post.Title)
		body := scorer.MarkdownCompound(post.Selftext)
		records = append(records, models.SentimentRecord{
			Title:             post.Title,
			Selftext:          post.Selftext,
			TitleSentiment:    title,
			SelftextSentiment: body,
			CombinedSentiment: (title + body) / 2,
		})
	}

	SortByCombined(records)

	dist, err := Distribution(records)
	if err != nil {
		return nil, models.PolarityDistribution{}, err
	}
	return records, dist, nil
}

// SortByCombined orders records by descending combined score; ties keep fetch order.
func SortByCombined(records []models.SentimentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CombinedSentiment > records[j].CombinedSentiment
	})
}

// Distribution classifies each record strictly by sign and returns the percentages.
func Distribution(records []models.SentimentRecord) (models.PolarityDistribution, error) {
	if len(records) == 0 {
		return models.PolarityDistribution{}, fmt.Errorf("%w: no posts to compute a sentiment distribution", ErrInsufficientData)
	}

	var positive, negative, neutral int
	for _, r := range records {
		switch {
		case r.CombinedSentiment > 0:
			positive++
		case r.CombinedSentiment < 0:
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(records))
	return models.PolarityDistribution{
		PercentPositive: float64(positive) / total * 100,
		PercentNegative: float64(negative) / total * 100,
		PercentNeutral:  float64(neutral) / total * 100,
	}, nil
}
