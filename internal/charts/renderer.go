package charts

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

var ErrRender = errors.New("chart render failed")

const (
	EngagementChartFile = "best-upload-hour.png"
	PolarityChartFile   = "Sentiment-Analysis-Pie-Chart.png"
	WordCloudFile       = "wordcloud.png"
	SecondWordCloudFile = "secondSub-WordCloud.png"
)

// FileRenderer draws PNG charts and writes each one into Dir under a fixed name,
// replacing whatever a previous run left there.
type FileRenderer struct {
	Dir string
}

func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{Dir: dir}
}

func (r *FileRenderer) EngagementChart(series []models.LabeledProfile) (models.Artifact, error) {
	png, err := renderEngagement(series)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: engagement chart: %v", ErrRender, err)
	}
	return r.write(EngagementChartFile, png)
}

func (r *FileRenderer) PolarityChart(dists []models.LabeledDistribution) (models.Artifact, error) {
	png, err := renderPolarity(dists)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: polarity chart: %v", ErrRender, err)
	}
	return r.write(PolarityChartFile, png)
}

// WordCloud draws slot 0 (primary) or slot 1 (secondary).
func (r *FileRenderer) WordCloud(slot int, weights []models.WeightedWord) (models.Artifact, error) {
	name := WordCloudFile
	if slot > 0 {
		name = SecondWordCloudFile
	}

	png, err := renderWordCloud(weights, int64(slot)+1)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: word cloud: %v", ErrRender, err)
	}
	return r.write(name, png)
}

func (r *FileRenderer) write(name string, data []byte) (models.Artifact, error) {
	if r.Dir != "" {
		if err := os.MkdirAll(r.Dir, 0o755); err != nil {
			return models.Artifact{}, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}

	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.Artifact{}, fmt.Errorf("%w: failed to write %s: %v", ErrRender, path, err)
	}

	slog.Info("[Charts] Wrote artifact",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return models.Artifact{Name: name, PNG: data}, nil
}
