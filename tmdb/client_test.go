package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinelist/cinelist/cache"
	"github.com/cinelist/cinelist/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCaches() *cache.Manager {
	return cache.New(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 5})
}

func newTestClient(apiKey, baseURL string) *Client {
	return New(&config.TMDBConfig{
		URL:          baseURL,
		APIKey:       apiKey,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
	}, newTestCaches())
}

func TestClient_SearchMovies_SampleFallback(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{
			name:       "case insensitive substring",
			query:      "matrix",
			wantTitles: []string{"The Matrix"},
		},
		{
			name:       "prefix match",
			query:      "Dune",
			wantTitles: []string{"Dune: Part Two"},
		},
		{
			name:  "no match",
			query: "zzzz",
		},
	}

	c := newTestClient("", "https://api.themoviedb.org/3")
	require.False(t, c.HasAPIKey())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := c.SearchMovies(context.Background(), tt.query)
			require.NoError(t, err)
			var titles []string
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestClient_DiscoverMovies_SampleFallback(t *testing.T) {
	c := newTestClient("", "https://api.themoviedb.org/3")

	movies, err := c.DiscoverMovies(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, movies)
	for _, m := range movies {
		assert.NotZero(t, m.ID)
		assert.NotEmpty(t, m.Title)
	}
}

func TestClient_SearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "inception", r.URL.Query().Get("query"))

		resp := MovieResponse{
			Page:         1,
			TotalPages:   1,
			TotalResults: 1,
			Results: []Movie{
				{ID: 27205, Title: "Inception", PosterPath: "/poster.jpg", BackdropPath: "/backdrop.jpg"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	c := newTestClient("test-key", server.URL)

	movies, err := c.SearchMovies(context.Background(), "inception")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 27205, movies[0].ID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", movies[0].PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/backdrop.jpg", movies[0].BackdropURL)
}

func TestClient_SearchMovies_CachesResults(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Cached"}]}`))
	}))
	defer server.Close()

	c := newTestClient("test-key", server.URL)

	for range 3 {
		movies, err := c.SearchMovies(context.Background(), "cached")
		require.NoError(t, err)
		require.Len(t, movies, 1)
	}
	assert.Equal(t, 1, calls)
}

func TestClient_DiscoverMovies_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient("bad-key", server.URL)

	_, err := c.DiscoverMovies(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_RefreshDiscover(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/discover/movie", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Fresh"}]}`))
	}))
	defer server.Close()

	c := newTestClient("test-key", server.URL)

	require.NoError(t, c.RefreshDiscover(context.Background()))
	require.Equal(t, 1, calls)

	// discover now serves the refreshed copy from cache
	movies, err := c.DiscoverMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Fresh", movies[0].Title)
	assert.Equal(t, 1, calls)

	// without an API key refresh is a no-op
	offline := newTestClient("", server.URL)
	require.NoError(t, offline.RefreshDiscover(context.Background()))
	assert.Equal(t, 1, calls)
}
