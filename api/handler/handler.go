package handler

import (
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"

	"github.com/cinelist/cinelist/api/auth"
	"github.com/cinelist/cinelist/api/cache"
	"github.com/cinelist/cinelist/api/models"
	"github.com/cinelist/cinelist/review"
	"github.com/cinelist/cinelist/tmdb"
	"github.com/cinelist/cinelist/watchlist"
)

// Handler serves the catalog, watchlist and review endpoints.
type Handler struct {
	catalog    *tmdb.Client
	watchlists *watchlist.Store
	reviews    *review.Store
	imageCache *cache.ImageCache
}

// New creates the application handler.
func New(catalog *tmdb.Client, watchlists *watchlist.Store, reviews *review.Store, imageCache *cache.ImageCache) *Handler {
	return &Handler{
		catalog:    catalog,
		watchlists: watchlists,
		reviews:    reviews,
		imageCache: imageCache,
	}
}

// Discover serves the discovery feed.
func (h *Handler) Discover(c *gin.Context) {
	movies, err := h.catalog.DiscoverMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"movies":  movies,
	})
}

// Search searches the catalog by title.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query parameter is required",
		})
		return
	}

	movies, err := h.catalog.SearchMovies(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"movies":  movies,
	})
}

// watchlistKey scopes the watchlist to the session user, falling back to the
// shared guest bucket for unauthenticated browsing.
func watchlistKey(c *gin.Context) string {
	if user := auth.CurrentUser(c); user != nil {
		return watchlist.Key(user.ID)
	}
	return watchlist.GuestKey
}

// Watchlist returns the caller's watchlist, optionally filtered by status.
func (h *Handler) Watchlist(c *gin.Context) {
	key := watchlistKey(c)
	ctx := c.Request.Context()

	var (
		entries []watchlist.Entry
		err     error
	)
	switch status := c.Query("status"); watchlist.Status(status) {
	case watchlist.StatusToWatch:
		entries, err = h.watchlists.ToWatch(ctx, key)
	case watchlist.StatusWatched:
		entries, err = h.watchlists.Watched(ctx, key)
	default:
		entries, err = h.watchlists.All(ctx, key)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": entries,
	})
}

// AddToWatchlist puts a movie on the caller's watchlist with status to-watch.
func (h *Handler) AddToWatchlist(c *gin.Context) {
	var movie tmdb.Movie
	if err := c.ShouldBindJSON(&movie); err != nil || movie.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid movie",
		})
		return
	}

	if err := h.watchlists.Add(c.Request.Context(), watchlistKey(c), movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateWatchlistStatus changes the status of a watchlist entry.
func (h *Handler) UpdateWatchlistStatus(c *gin.Context) {
	movieID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid movie ID",
		})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !watchlist.Status(req.Status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid status",
		})
		return
	}

	if err := h.watchlists.UpdateStatus(c.Request.Context(), watchlistKey(c), movieID, watchlist.Status(req.Status)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveFromWatchlist deletes a watchlist entry.
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	movieID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid movie ID",
		})
		return
	}

	if err := h.watchlists.Remove(c.Request.Context(), watchlistKey(c), movieID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MovieReviews returns the reviews for a movie, newest first.
func (h *Handler) MovieReviews(c *gin.Context) {
	movieID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid movie ID",
		})
		return
	}

	reviews := h.reviews.ByMovie(c.Request.Context(), movieID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": models.ToReviewItems(reviews),
	})
}

// AddMovieReview posts a review on a movie, authored by the session user.
func (h *Handler) AddMovieReview(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	movieID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid movie ID",
		})
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "requête invalide",
		})
		return
	}

	added, err := h.reviews.Add(c.Request.Context(), movieID, user.Name, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  models.ToReviewItem(*added),
	})
}

// CachedImage proxies catalog artwork through the disk image cache.
func (h *Handler) CachedImage(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "url parameter is required",
		})
		return
	}

	path, err := h.imageCache.GetCachedImagePath(imageURL)
	if err != nil || path == "" {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "failed to fetch image",
		})
		return
	}
	c.File(path)
}

func parseIntParam(param string) (int, error) {
	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, err
	}
	return safecast.ToInt(id)
}
