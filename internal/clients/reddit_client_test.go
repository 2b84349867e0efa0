package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/subreddit-insights/config"
	"github.com/spacesedan/subreddit-insights/internal/models"
)

const testUserAgent = "subreddit-insights-test/0.1"

func testCredentials() config.Credentials {
	return config.Credentials{ClientID: "client", SecretKey: "secret", Username: "user", Password: "pw"}
}

func createTestListing() models.RedditAPIResponse {
	return models.RedditAPIResponse{
		Data: models.RedditAPIData{
			Children: []models.RedditAPIChild{
				{Data: models.RedditAPIChildData{ID: "a", Title: "Go 1.24 released", Score: 120, UpvoteRatio: 0.97, CreatedUTC: 1700000000}},
				{Data: models.RedditAPIChildData{ID: "b", Title: "Help with generics", Selftext: "why?", Score: 3, UpvoteRatio: 0.6, CreatedUTC: 1700007200}},
			},
		},
	}
}

// createMockReddit serves the token endpoint and a listing handler under one server.
func createMockReddit(t *testing.T, listing http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var tokenCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)

		id, secret, ok := r.BasicAuth()
		if !ok || id != "client" || secret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("User-Agent") != testUserAgent {
			t.Errorf("token request User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "password" || r.Form.Get("username") != "user" || r.Form.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/r/", listing)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func newTestClient(server *httptest.Server, creds config.Credentials) *RedditClient {
	rc := NewRedditClient(creds, testUserAgent)
	rc.Config.Endpoint.TokenURL = server.URL + "/api/v1/access_token"
	rc.APIURL = server.URL
	rc.InitialBackoff = time.Millisecond
	return rc
}

func TestRedditClient_FetchPosts(t *testing.T) {
	server, _ := createMockReddit(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/golang/top" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Query().Get("limit") != "100" || r.URL.Query().Get("t") != "week" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(createTestListing())
	})

	rc := newTestClient(server, testCredentials())
	posts, err := rc.FetchPosts(context.Background(), "r/golang", models.ListingTop, models.WindowWeek)
	if err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != "Go 1.24 released" || posts[0].CreatedUTC != 1700000000 {
		t.Errorf("first post = %+v", posts[0])
	}
	if posts[1].Selftext != "why?" {
		t.Errorf("second post = %+v", posts[1])
	}
}

func TestRedditClient_OmitsUnsetWindow(t *testing.T) {
	server, _ := createMockReddit(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["t"]; ok {
			t.Errorf("t should be absent, query = %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(createTestListing())
	})

	rc := newTestClient(server, testCredentials())
	if _, err := rc.FetchPosts(context.Background(), "golang", models.ListingNew, ""); err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}
}

func TestRedditClient_ReusesToken(t *testing.T) {
	server, tokenCalls := createMockReddit(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(createTestListing())
	})

	rc := newTestClient(server, testCredentials())
	for i := 0; i < 2; i++ {
		if _, err := rc.FetchPosts(context.Background(), "golang", models.ListingHot, ""); err != nil {
			t.Fatalf("FetchPosts() error = %v", err)
		}
	}
	if got := atomic.LoadInt32(tokenCalls); got != 1 {
		t.Errorf("token endpoint called %d times, want 1", got)
	}
}

func TestRedditClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		creds   config.Credentials
		handler http.HandlerFunc
		want    error
	}{
		{
			name:  "bad credentials",
			creds: config.Credentials{ClientID: "client", SecretKey: "wrong", Username: "user", Password: "pw"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("listing should not be requested")
			},
			want: ErrAuthFailure,
		},
		{
			name:  "listing unauthorized twice",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: ErrAuthFailure,
		},
		{
			name:  "unknown subreddit",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: ErrSubredditNotFound,
		},
		{
			name:  "redirect to search",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/subreddits/search.json?q=nope", http.StatusFound)
			},
			want: ErrSubredditNotFound,
		},
		{
			name:  "rate limited",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			want: ErrRateLimited,
		},
		{
			name:  "server error",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want: ErrFetchFailure,
		},
		{
			name:  "bad json",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": [`))
			},
			want: ErrFetchFailure,
		},
		{
			name:  "malformed timestamp",
			creds: testCredentials(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"children":[{"data":{"id":"x","title":"t","created_utc":0}}]}}`))
			},
			want: models.ErrMalformedPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := createMockReddit(t, tt.handler)
			rc := newTestClient(server, tt.creds)

			_, err := rc.FetchPosts(context.Background(), "golang", models.ListingNew, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("FetchPosts() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRedditClient_RetriesAfterRateLimit(t *testing.T) {
	var calls int32
	server, _ := createMockReddit(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(createTestListing())
	})

	rc := newTestClient(server, testCredentials())
	posts, err := rc.FetchPosts(context.Background(), "golang", models.ListingNew, "")
	if err != nil {
		t.Fatalf("FetchPosts() error = %v", err)
	}
	if len(posts) != 2 || atomic.LoadInt32(&calls) != 3 {
		t.Errorf("posts=%d calls=%d", len(posts), calls)
	}
}

func TestRedditClient_EmptySubreddit(t *testing.T) {
	rc := NewRedditClient(testCredentials(), testUserAgent)
	if _, err := rc.FetchPosts(context.Background(), "  ", models.ListingNew, ""); !errors.Is(err, ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
}
