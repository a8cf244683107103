package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/cinelist/cinelist/api/auth"
	"github.com/cinelist/cinelist/api/cache"
	"github.com/cinelist/cinelist/api/handler"
	authstore "github.com/cinelist/cinelist/auth"
	"github.com/cinelist/cinelist/config"
	"github.com/cinelist/cinelist/review"
	"github.com/cinelist/cinelist/tmdb"
	"github.com/cinelist/cinelist/watchlist"
)

// Server is the CineList HTTP API server.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine

	directory  *authstore.Directory
	watchlists *watchlist.Store
	reviews    *review.Store
	catalog    *tmdb.Client
	imageCache *cache.ImageCache
}

// New creates the API server.
func New(cfg *config.Config, directory *authstore.Directory, watchlists *watchlist.Store, reviews *review.Store, catalog *tmdb.Client, imageCache *cache.ImageCache, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Server{
		cfg:        cfg,
		ginEngine:  gin.Default(),
		directory:  directory,
		watchlists: watchlists,
		reviews:    reviews,
		catalog:    catalog,
		imageCache: imageCache,
	}, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("cinelist_session", store))
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupSession()

	h := handler.New(s.catalog, s.watchlists, s.reviews, s.imageCache)
	ah := auth.NewHandler(s.directory)

	api := s.ginEngine.Group("/api")

	api.POST("/auth/login", ah.Login)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/logout", ah.Logout)
	api.GET("/auth/me", auth.LoadUser(), ah.Me)

	// Catalog browsing and the guest watchlist work without a session.
	api.GET("/movies", h.Discover)
	api.GET("/movies/search", h.Search)
	api.GET("/movies/:id/reviews", h.MovieReviews)
	api.GET("/images/cache", h.CachedImage)

	wl := api.Group("/watchlist", auth.LoadUser())
	wl.GET("", h.Watchlist)
	wl.POST("", h.AddToWatchlist)
	wl.PATCH("/:id/status", h.UpdateWatchlistStatus)
	wl.DELETE("/:id", h.RemoveFromWatchlist)

	protected := api.Group("/", auth.RequireAuth())
	protected.POST("/movies/:id/reviews", h.AddMovieReview)
}

func (s *Server) setupAdminRoutes() {
	h := handler.NewAdmin(s.directory, s.reviews)

	adminGroup := s.ginEngine.Group("/api/admin")
	adminGroup.Use(auth.RequireAuth(), auth.RequireAdmin())

	adminGroup.GET("/users", h.Users)
	adminGroup.PATCH("/users/:id", h.UpdateUser)
	adminGroup.DELETE("/users/:id", h.DeleteUser)
	adminGroup.GET("/reviews", h.Reviews)
	adminGroup.DELETE("/reviews/:id", h.DeleteReview)
	adminGroup.GET("/overview", h.Overview)
}

// Run sets up the routes and serves until the listener fails.
func (s *Server) Run() error {
	s.setupRoutes()
	s.setupAdminRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}
