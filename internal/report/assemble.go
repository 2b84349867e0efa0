package report

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

const (
	SheetBestPostingTime = "Best Posting Time"
	SheetWordCloud       = "WordCloud"
	SheetSentiment       = "Sentiment Analysis"
)

// ChartRenderer draws the report images.
type ChartRenderer interface {
	EngagementChart(series []models.LabeledProfile) (models.Artifact, error)
	PolarityChart(dists []models.LabeledDistribution) (models.Artifact, error)
	WordCloud(slot int, weights []models.WeightedWord) (models.Artifact, error)
}

// blockLayout is where one subreddit's label and table go on each sheet.
type blockLayout struct {
	timeLabel, timeTable           string
	wordLabel, wordTable           string
	sentimentLabel, sentimentTable string
}

// Secondary blocks start one empty column right of the primary's last column.
var layouts = [2]blockLayout{
	{
		timeLabel: "A1", timeTable: "A2",
		wordLabel: "A1", wordTable: "A2",
		sentimentLabel: "A1", sentimentTable: "A2",
	},
	{
		timeLabel: "D1", timeTable: "D2",
		wordLabel: "E1", wordTable: "E2",
		sentimentLabel: "G1", sentimentTable: "G2",
	},
}

const (
	engagementImageAnchor  = "G4"
	polarityImageAnchor    = "P4"
	singleWordCloudAnchor  = "G4"
	primaryWordCloudAnchor = "I4"
	secondWordCloudAnchor  = "P4"
)

type images struct {
	engagement models.Artifact
	polarity   models.Artifact
	clouds     []models.Artifact
}

// Assemble renders the charts for merged and lays the three sheets out in doc. Every
// sheet it touches is cleared first, so assembling into the same document again
// replaces the previous run instead of stacking on top of it. Nothing in doc changes
// when rendering fails.
func Assemble(doc *Document, merged models.MergedReport, renderer ChartRenderer) error {
	results := merged.Results()

	imgs, err := render(results, renderer)
	if err != nil {
		return err
	}

	timeSheet := doc.Sheet(SheetBestPostingTime)
	wordSheet := doc.Sheet(SheetWordCloud)
	sentimentSheet := doc.Sheet(SheetSentiment)
	for _, s := range []*Sheet{timeSheet, wordSheet, sentimentSheet} {
		s.Reset()
	}

	for i, r := range results {
		l := layouts[i]

		timeSheet.SetLabel(l.timeLabel, r.Subreddit)
		timeSheet.SetTable(l.timeTable, profileTable(r.Profile))

		wordSheet.SetLabel(l.wordLabel, r.Subreddit)
		wordSheet.SetTable(l.wordTable, wordTable(r.Words))

		sentimentSheet.SetLabel(l.sentimentLabel, r.Subreddit)
		sentimentSheet.SetTable(l.sentimentTable, sentimentTable(r.Sentiment))
	}

	timeSheet.SetImage(engagementImageAnchor, imgs.engagement)
	sentimentSheet.SetImage(polarityImageAnchor, imgs.polarity)
	if merged.IsDual() {
		wordSheet.SetImage(primaryWordCloudAnchor, imgs.clouds[0])
		wordSheet.SetImage(secondWordCloudAnchor, imgs.clouds[1])
	} else {
		wordSheet.SetImage(singleWordCloudAnchor, imgs.clouds[0])
	}

	slog.Info("[Report] Assembled document",
		slog.String("primary", merged.Primary.Subreddit),
		slog.Bool("dual", merged.IsDual()))

	return nil
}

func render(results []models.PipelineResult, renderer ChartRenderer) (images, error) {
	var imgs images

	profiles := make([]models.LabeledProfile, len(results))
	dists := make([]models.LabeledDistribution, len(results))
	for i, r := range results {
		profiles[i] = models.LabeledProfile{Label: r.Subreddit, Profile: r.Profile}
		dists[i] = models.LabeledDistribution{Label: r.Subreddit, Distribution: r.Distribution}
	}

	var err error
	if imgs.engagement, err = renderer.EngagementChart(profiles); err != nil {
		return imgs, fmt.Errorf("render engagement chart: %w", err)
	}
	if imgs.polarity, err = renderer.PolarityChart(dists); err != nil {
		return imgs, fmt.Errorf("render polarity chart: %w", err)
	}
	for i, r := range results {
		cloud, err := renderer.WordCloud(i, r.WordWeights)
		if err != nil {
			return imgs, fmt.Errorf("render word cloud for r/%s: %w", r.Subreddit, err)
		}
		imgs.clouds = append(imgs.clouds, cloud)
	}

	return imgs, nil
}

func profileTable(p models.EngagementProfile) Table {
	t := Table{Header: []string{"hour_of_day", "score"}}
	for _, h := range p.Hours() {
		t.Rows = append(t.Rows, []any{h, p[h]})
	}
	return t
}

func wordTable(words []models.WordFrequencyEntry) Table {
	t := Table{Header: []string{"Word", "Absolute Frequency", "Rank"}}
	for _, w := range words {
		t.Rows = append(t.Rows, []any{w.Word, w.AbsoluteFrequency, w.Rank})
	}
	return t
}

func sentimentTable(records []models.SentimentRecord) Table {
	t := Table{Header: []string{"title", "selftext", "sentiment title", "sentiment selftext", "Combined Sentiment"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []any{r.Title, r.Selftext, r.TitleSentiment, r.SelftextSentiment, r.CombinedSentiment})
	}
	return t
}
