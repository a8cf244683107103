package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cinelist/cinelist/api"
	apicache "github.com/cinelist/cinelist/api/cache"
	"github.com/cinelist/cinelist/auth"
	"github.com/cinelist/cinelist/cache"
	"github.com/cinelist/cinelist/config"
	"github.com/cinelist/cinelist/database"
	"github.com/cinelist/cinelist/review"
	"github.com/cinelist/cinelist/scheduler"
	"github.com/cinelist/cinelist/tmdb"
	"github.com/cinelist/cinelist/watchlist"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.cinelist, /etc/cinelist)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "cinelist",
	Short: "CineList is a movie discovery and watchlist server",
	Long:  `CineList lets users browse and search a movie catalog, keep a personal watchlist with to-watch/watched status, and post reviews, with an admin surface for user management and review moderation.`,
	Example: `cinelist --config config.yml
  cinelist -c /path/to/config.yml --log-level debug
  cinelist --log-level info  # searches for config in default locations`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setLogLevel(rootCmdPersistentFlags.LogLevel)
		logToFile()
	},
	Run: root,
}

func root(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	directory, err := auth.NewDirectory(ctx, store)
	if err != nil {
		log.Fatalf("failed to load user directory: %v", err)
	}

	catalogCache := cache.New(cfg.Cache)
	catalog := tmdb.New(cfg.TMDB, catalogCache)

	watchlists := watchlist.NewStore(store)
	reviews, err := review.NewStore(ctx, store)
	if err != nil {
		log.Fatalf("failed to load review store: %v", err)
	}

	imageCache := apicache.NewImageCache(cfg.Images.CacheDir)

	sched, err := scheduler.New()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	if err := sched.AddJob("catalog-refresh", time.Duration(cfg.CatalogRefreshInterval)*time.Minute, func(ctx context.Context) error {
		return catalog.RefreshDiscover(ctx)
	}); err != nil {
		log.Fatalf("failed to schedule catalog refresh: %v", err)
	}
	if err := sched.AddJob("image-cache-cleanup", 24*time.Hour, func(_ context.Context) error {
		return imageCache.CleanupOldImages(7 * 24 * time.Hour)
	}); err != nil {
		log.Fatalf("failed to schedule image cache cleanup: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	server, err := api.New(cfg, directory, watchlists, reviews, catalog, imageCache, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("cinelist started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
	time.Sleep(2 * time.Second)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// Create a multi-writer that writes to both console and file
	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.Info("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

func Execute() error {
	return rootCmd.Execute()
}
