package clients

import "errors"

var (
	ErrAuthFailure       = errors.New("reddit authentication failed")
	ErrRateLimited       = errors.New("reddit rate limit exceeded")
	ErrSubredditNotFound = errors.New("subreddit not found")
	ErrFetchFailure      = errors.New("reddit listing fetch failed")
)
