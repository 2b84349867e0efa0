package report

import "github.com/spacesedan/subreddit-insights/internal/models"

// Merge pairs the primary result with the optional secondary. Results pass through
// unchanged; placement is decided by Assemble.
func Merge(primary models.PipelineResult, secondary *models.PipelineResult) models.MergedReport {
	return models.MergedReport{Primary: primary, Secondary: secondary}
}
