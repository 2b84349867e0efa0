package analysis

import (
	"time"

	"github.com/spacesedan/subreddit-insights/internal/models"
	"gonum.org/v1/gonum/stat"
)

// PostingTimes breaks each post's creation time into calendar fields. Timestamps are
// Unix seconds and are read in UTC without conversion.
func PostingTimes(posts []models.Post) []models.PostingTime {
	times := make([]models.PostingTime, 0, len(posts))
	for _, post := range posts {
		created := time.Unix(post.CreatedUTC, 0).UTC()
		times = append(times, models.PostingTime{
			Hour:        created.Hour(),
			Minute:      created.Minute(),
			Month:       int(created.Month()),
			Year:        created.Year(),
			DayOfWeek:   (int(created.Weekday()) + 6) % 7,
			DayName:     created.Weekday().String(),
			Score:       post.Score,
			UpvoteRatio: post.UpvoteRatio,
		})
	}
	return times
}

// Profile returns the mean score per hour of day for the hours that have posts.
func Profile(posts []models.Post) models.EngagementProfile {
	return ProfileFromTimes(PostingTimes(posts))
}

func ProfileFromTimes(times []models.PostingTime) models.EngagementProfile {
	byHour := make(map[int][]float64)
	for _, t := range times {
		byHour[t.Hour] = append(byHour[t.Hour], float64(t.Score))
	}

	profile := make(models.EngagementProfile, len(byHour))
	for hour, scores := range byHour {
		profile[hour] = stat.Mean(scores, nil)
	}
	return profile
}
