package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds the configuration for the CineList server and its dependencies.
type Config struct {
	// Listen is the address the CineList server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the CineList server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// SessionKey is the key used to authenticate session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// CatalogRefreshInterval is the interval in minutes for refreshing the cached discover catalog.
	CatalogRefreshInterval int `yaml:"catalog_refresh_interval" mapstructure:"catalog_refresh_interval"`

	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// TMDB holds the configuration for the TMDB catalog client.
	TMDB *TMDBConfig `yaml:"tmdb" mapstructure:"tmdb"`
	// Images holds the configuration for the poster image cache.
	Images *ImagesConfig `yaml:"images" mapstructure:"images"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the directory where the sqlite database is stored.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the cache configuration for catalog results.
type CacheConfig struct {
	// Type is the cache backend, either "memory" or "redis".
	Type string `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server when the redis backend is used.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is the time in minutes a cached catalog result stays valid.
	TTL int `yaml:"ttl" mapstructure:"ttl"`
}

// TMDBConfig holds the configuration for the TMDB catalog client.
type TMDBConfig struct {
	// URL is the base URL of the TMDB API.
	URL string `yaml:"url" mapstructure:"url"`
	// APIKey is the TMDB API key. When empty, the bundled sample catalog is served instead.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// ImageBaseURL is the base URL for poster and backdrop images.
	ImageBaseURL string `yaml:"image_base_url" mapstructure:"image_base_url"`
}

// ImagesConfig holds the configuration for the poster image cache.
type ImagesConfig struct {
	// CacheDir is the directory where downloaded artwork is cached.
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

const (
	// CacheTypeMemory caches catalog results in process memory.
	CacheTypeMemory = "memory"
	// CacheTypeRedis caches catalog results in redis.
	CacheTypeRedis = "redis"
)

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("CINELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cinelist")
		v.AddConfigPath("/etc/cinelist")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with CINELIST_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("server_url", "http://localhost:3003")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("catalog_refresh_interval", 60)

	v.SetDefault("database.path", "./data")

	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.ttl", 15)

	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w500")

	v.SetDefault("images.cache_dir", "./data/cache/images")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing cinelist config")
	}

	if c.SessionKey == "" {
		// Sessions won't survive a restart with a generated key.
		c.SessionKey = uuid.New().String()
		log.Warn("No session key configured, generated an ephemeral one. Existing sessions will be invalidated on restart.")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Cache == nil {
		return fmt.Errorf("missing cache config")
	}
	switch c.Cache.Type {
	case CacheTypeMemory:
	case CacheTypeRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("redis URL is required when the redis cache is configured")
		}
	default:
		return fmt.Errorf("unknown cache type %q", c.Cache.Type)
	}

	if c.TMDB == nil || c.TMDB.URL == "" {
		return fmt.Errorf("tmdb URL is required")
	}
	if c.TMDB.APIKey == "" {
		log.Warn("No TMDB API key configured, serving the bundled sample catalog")
	}

	return nil
}
