package models

import "sort"

// PostingTime is a post's creation time broken into calendar fields, in UTC.
type PostingTime struct {
	Hour        int     `json:"hour_of_day"`
	Minute      int     `json:"min_of_day"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	DayOfWeek   int     `json:"day_of_week"` // Monday=0
	DayName     string  `json:"day_name"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
}

// EngagementProfile maps hour of day to mean score. Hours with no posts are absent.
type EngagementProfile map[int]float64

func (p EngagementProfile) Hours() []int {
	hours := make([]int, 0, len(p))
	for h := range p {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

type WordFrequencyEntry struct {
	Word              string `json:"word"`
	AbsoluteFrequency int    `json:"absolute_frequency"`
	Rank              int    `json:"rank"`
}

// WeightedWord carries a normalized frequency in (0,1]; the top word weighs 1.
type WeightedWord struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

type SentimentRecord struct {
	Title             string  `json:"title"`
	Selftext          string  `json:"selftext"`
	TitleSentiment    float64 `json:"sentiment_title"`
	SelftextSentiment float64 `json:"sentiment_selftext"`
	CombinedSentiment float64 `json:"combined_sentiment"`
}

type PolarityDistribution struct {
	PercentPositive float64 `json:"percent_positive"`
	PercentNegative float64 `json:"percent_negative"`
	PercentNeutral  float64 `json:"percent_neutral"`
}

// PipelineResult is everything derived from one subreddit's fetch.
type PipelineResult struct {
	Subreddit    string
	PostCount    int
	PostingTimes []PostingTime
	Profile      EngagementProfile
	Words        []WordFrequencyEntry
	WordWeights  []WeightedWord
	Sentiment    []SentimentRecord
	Distribution PolarityDistribution
}

// MergedReport pairs the primary result with an optional second subreddit.
type MergedReport struct {
	Primary   PipelineResult
	Secondary *PipelineResult
}

func (m MergedReport) IsDual() bool {
	return m.Secondary != nil
}

// Results returns primary then secondary, when present.
func (m MergedReport) Results() []PipelineResult {
	if m.Secondary == nil {
		return []PipelineResult{m.Primary}
	}
	return []PipelineResult{m.Primary, *m.Secondary}
}

type LabeledProfile struct {
	Label   string
	Profile EngagementProfile
}

type LabeledDistribution struct {
	Label        string
	Distribution PolarityDistribution
}

// Artifact is a rendered image and the file name it was written under.
type Artifact struct {
	Name string
	PNG  []byte
}
