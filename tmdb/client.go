package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cinelist/cinelist/cache"
	"github.com/cinelist/cinelist/config"
)

// Movie is a catalog record as served by TMDB. The watchlist and review layers
// treat it as an opaque value keyed by ID.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	PosterURL        string  `json:"posterUrl,omitempty"`
	BackdropURL      string  `json:"backdropUrl,omitempty"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// MovieResponse is a paged TMDB result set.
type MovieResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// Client talks to the TMDB API. Without an API key it serves the bundled
// sample catalog so the application stays browsable offline.
type Client struct {
	baseURL    string
	apiKey     string
	imageBase  string
	httpClient *http.Client

	discoverCache *cache.PrefixedCache[[]Movie]
	searchCache   *cache.PrefixedCache[[]Movie]
}

// New creates a new TMDB catalog client.
func New(cfg *config.TMDBConfig, caches *cache.Manager) *Client {
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		imageBase:  cfg.ImageBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},

		discoverCache: cache.For[[]Movie](caches, "tmdb:discover:"),
		searchCache:   cache.For[[]Movie](caches, "tmdb:search:"),
	}
}

// HasAPIKey reports whether a real TMDB key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// SearchMovies searches the catalog by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	if !c.HasAPIKey() {
		return c.searchSample(query), nil
	}

	if movies, err := c.searchCache.Get(ctx, query); err == nil {
		return movies, nil
	}

	movies, err := c.fetchMovies(ctx, "/search/movie", url.Values{"query": []string{query}})
	if err != nil {
		return nil, err
	}
	if err := c.searchCache.Set(ctx, query, movies); err != nil {
		log.Debug("failed to cache search results", "query", query, "error", err)
	}
	return movies, nil
}

// DiscoverMovies returns the discovery feed.
func (c *Client) DiscoverMovies(ctx context.Context) ([]Movie, error) {
	if !c.HasAPIKey() {
		return sampleCatalog(), nil
	}

	if movies, err := c.discoverCache.Get(ctx, "feed"); err == nil {
		return movies, nil
	}
	return c.refreshDiscover(ctx)
}

// RefreshDiscover re-fetches the discovery feed and replaces the cached copy.
// It is a no-op without an API key.
func (c *Client) RefreshDiscover(ctx context.Context) error {
	if !c.HasAPIKey() {
		return nil
	}
	_, err := c.refreshDiscover(ctx)
	return err
}

func (c *Client) refreshDiscover(ctx context.Context) ([]Movie, error) {
	movies, err := c.fetchMovies(ctx, "/discover/movie", nil)
	if err != nil {
		return nil, err
	}
	if err := c.discoverCache.Set(ctx, "feed", movies); err != nil {
		log.Debug("failed to cache discover results", "error", err)
	}
	return movies, nil
}

func (c *Client) fetchMovies(ctx context.Context, endpoint string, params url.Values) ([]Movie, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var page MovieResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	movies := page.Results
	for i := range movies {
		c.deriveImageURLs(&movies[i])
	}
	return movies, nil
}

// doRequest performs an HTTP request to the TMDB API.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values) (*http.Response, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}

func (c *Client) deriveImageURLs(m *Movie) {
	if m.PosterPath != "" {
		m.PosterURL = c.imageBase + m.PosterPath
	}
	if m.BackdropPath != "" {
		m.BackdropURL = c.imageBase + m.BackdropPath
	}
}

func (c *Client) searchSample(query string) []Movie {
	needle := strings.ToLower(query)
	var movies []Movie
	for _, m := range sampleCatalog() {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			movies = append(movies, m)
		}
	}
	return movies
}
