package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrMalformedPost = errors.New("malformed post")

// Post is the slice of a Reddit listing child the analysis needs.
type Post struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	CreatedUTC  int64   `json:"created_utc"`
}

type RedditAPIResponse struct {
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Data RedditAPIChildData `json:"data"`
}

type RedditAPIChildData struct {
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	CreatedUTC  float64 `json:"created_utc"`
	ID          string  `json:"id"`
}

// ToPost validates the listing child and converts it. Reddit sends created_utc as a float.
func (d RedditAPIChildData) ToPost() (Post, error) {
	if math.IsNaN(d.CreatedUTC) || math.IsInf(d.CreatedUTC, 0) || d.CreatedUTC <= 0 {
		return Post{}, fmt.Errorf("%w: post %q has created_utc %v", ErrMalformedPost, d.ID, d.CreatedUTC)
	}
	if d.UpvoteRatio < 0 || d.UpvoteRatio > 1 {
		return Post{}, fmt.Errorf("%w: post %q has upvote_ratio %v", ErrMalformedPost, d.ID, d.UpvoteRatio)
	}

	return Post{
		Title:       d.Title,
		Selftext:    d.Selftext,
		Score:       d.Score,
		UpvoteRatio: d.UpvoteRatio,
		CreatedUTC:  int64(d.CreatedUTC),
	}, nil
}

// Posts converts every child, stopping at the first malformed one.
func (r RedditAPIResponse) Posts() ([]Post, error) {
	posts := make([]Post, 0, len(r.Data.Children))
	for i, child := range r.Data.Children {
		post, err := child.Data.ToPost()
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}
