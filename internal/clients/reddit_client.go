package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/subreddit-insights/config"
	"github.com/spacesedan/subreddit-insights/internal/models"
	"golang.org/x/oauth2"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"

	LISTING_LIMIT   = 100
	REQUEST_TIMEOUT = 30 * time.Second

	// 429 handling
	MAX_RETRIES     = 5
	INITIAL_BACKOFF = 1 * time.Second
	MAX_BACKOFF     = 32 * time.Second
)

// CredentialProvider supplies the script-app credentials for the password grant.
type CredentialProvider interface {
	Credentials(ctx context.Context) (config.Credentials, error)
}

type RedditClient struct {
	Config         *oauth2.Config
	APIURL         string
	UserAgent      string
	InitialBackoff time.Duration

	creds  config.Credentials
	base   *http.Client
	client *http.Client
	mu     sync.Mutex
}

func NewRedditClient(creds config.Credentials, userAgent string) *RedditClient {
	return &RedditClient{
		Config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.SecretKey,
			Endpoint: oauth2.Endpoint{
				TokenURL:  REDDIT_AUTH_URL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		APIURL:         REDDIT_API_URL,
		UserAgent:      userAgent,
		InitialBackoff: INITIAL_BACKOFF,
		creds:          creds,
		base: &http.Client{
			Timeout:   REQUEST_TIMEOUT,
			Transport: &userAgentTransport{agent: userAgent, base: http.DefaultTransport},
		},
	}
}

// userAgentTransport stamps every request, token exchange included. Reddit rejects
// requests carrying a default Go user agent.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

func (rc *RedditClient) authorizedClient(ctx context.Context) (*http.Client, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.client != nil {
		return rc.client, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, rc.base)
	token, err := rc.Config.PasswordCredentialsToken(ctx, rc.creds.Username, rc.creds.Password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, fmt.Errorf("%w: token endpoint returned status %d", ErrAuthFailure, retrieveErr.Response.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthFailure, err)
	}

	slog.Debug("[RedditClient] Obtained access token",
		slog.Time("expiry", token.Expiry))

	// The password grant issues no refresh token, so the token is static for the client's lifetime.
	rc.client = &http.Client{
		Timeout: rc.base.Timeout,
		Transport: &oauth2.Transport{
			Base:   rc.base.Transport,
			Source: oauth2.StaticTokenSource(token),
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return rc.client, nil
}

func (rc *RedditClient) invalidate() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.client = nil
}

// FetchPosts returns up to 100 posts from one listing of a subreddit, in listing order.
// The window is sent only when set.
func (rc *RedditClient) FetchPosts(ctx context.Context, subreddit string, listing models.ListingType, window models.TimeWindow) ([]models.Post, error) {
	subreddit = strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	if subreddit == "" {
		return nil, fmt.Errorf("%w: empty subreddit name", ErrFetchFailure)
	}

	listingURL, err := rc.listingURL(subreddit, listing, window)
	if err != nil {
		return nil, err
	}

	slog.Info("[RedditClient] Fetching listing",
		slog.String("subreddit", subreddit),
		slog.String("listing", string(listing)),
		slog.String("window", string(window)))

	start := time.Now()
	posts, err := rc.fetchWithBackoff(ctx, listingURL, true)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] r/%s: %w", subreddit, err)
	}

	slog.Info("[RedditClient] Fetched listing",
		slog.String("subreddit", subreddit),
		slog.Int("posts", len(posts)),
		slog.Duration("elapsed", time.Since(start)))

	return posts, nil
}

func (rc *RedditClient) listingURL(subreddit string, listing models.ListingType, window models.TimeWindow) (string, error) {
	parsedUrl, err := url.Parse(fmt.Sprintf("%s/r/%s/%s", strings.TrimRight(rc.APIURL, "/"), url.PathEscape(subreddit), listing))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse URL: %v", ErrFetchFailure, err)
	}

	queryParams := parsedUrl.Query()
	queryParams.Add("limit", strconv.Itoa(LISTING_LIMIT))
	if window.IsSet() {
		queryParams.Add("t", string(window))
	}
	parsedUrl.RawQuery = queryParams.Encode()

	return parsedUrl.String(), nil
}

func (rc *RedditClient) fetchWithBackoff(ctx context.Context, listingURL string, reauth bool) ([]models.Post, error) {
	backoff := rc.InitialBackoff

	for attempt := 1; ; attempt++ {
		posts, status, err := rc.fetchOnce(ctx, listingURL)

		switch {
		case status == http.StatusUnauthorized && reauth:
			slog.Warn("[RedditClient] Token rejected - Re-authenticating and Retrying...")
			rc.invalidate()
			return rc.fetchWithBackoff(ctx, listingURL, false)
		case status == http.StatusTooManyRequests && attempt < MAX_RETRIES:
			slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
				slog.Int("attempt", attempt), slog.Duration("backoff", backoff))

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrFetchFailure, ctx.Err())
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > MAX_BACKOFF {
				backoff = MAX_BACKOFF
			}
			continue
		}

		return posts, err
	}
}

func (rc *RedditClient) fetchOnce(ctx context.Context, listingURL string) ([]models.Post, int, error) {
	client, err := rc.authorizedClient(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, resp.StatusCode, fmt.Errorf("%w: listing returned status %d", ErrAuthFailure, resp.StatusCode)
	case http.StatusTooManyRequests:
		return nil, resp.StatusCode, ErrRateLimited
	case http.StatusNotFound:
		return nil, resp.StatusCode, ErrSubredditNotFound
	case http.StatusFound, http.StatusMovedPermanently:
		// unknown subreddits redirect to the subreddit search page
		if strings.Contains(resp.Header.Get("Location"), "subreddits/search") {
			return nil, resp.StatusCode, ErrSubredditNotFound
		}
		return nil, resp.StatusCode, fmt.Errorf("%w: unexpected redirect to %q", ErrFetchFailure, resp.Header.Get("Location"))
	default:
		return nil, resp.StatusCode, fmt.Errorf("%w: listing returned status %d", ErrFetchFailure, resp.StatusCode)
	}

	var listing models.RedditAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to decode listing: %v", ErrFetchFailure, err)
	}

	posts, err := listing.Posts()
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if len(posts) > LISTING_LIMIT {
		posts = posts[:LISTING_LIMIT]
	}

	return posts, resp.StatusCode, nil
}
