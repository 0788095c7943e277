package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Empty disables the genre catalog table.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBPoolSize  int    `envconfig:"DB_POOL_SIZE" default:"10"`

	// Empty disables the discovery page cache.
	RedisURL string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	TMDB TMDBConfig
}

type TMDBConfig struct {
	APIURL   string        `envconfig:"TMDB_API_URL" default:"https://api.themoviedb.org/3"`
	APIToken string        `envconfig:"TMDB_API_TOKEN" required:"true"`
	Timeout  time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`

	// Requests per second allowed towards the catalog.
	RateLimit float64 `envconfig:"TMDB_RATE_LIMIT" default:"40"`

	VoteCountMin   int     `envconfig:"TMDB_VOTE_COUNT_MIN" default:"500"`
	VoteAverageMin float64 `envconfig:"TMDB_VOTE_AVERAGE_MIN" default:"6"`
}

// Load configuration from env, reading a .env file first when present.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) validate() error {
	if c.TMDB.APIToken == "" {
		return fmt.Errorf("TMDB_API_TOKEN is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.TMDB.RateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be positive, got %v", c.TMDB.RateLimit)
	}
	if c.DBPoolSize <= 0 {
		return fmt.Errorf("DB_POOL_SIZE must be positive, got %d", c.DBPoolSize)
	}
	return nil
}
