package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ychoi-kr/wikidocs-mcp/internal/cache"
	"github.com/ychoi-kr/wikidocs-mcp/internal/search"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

type Config struct {
	// Wikidocs API
	APIURL   string
	APIToken string

	// Book cache
	CacheDir    string
	CacheMaxAge time.Duration

	// Search
	SearchMaxResults int

	// Optional HTTP transport; empty means stdio only.
	HTTPAddr   string
	HTTPAPIKey string
}

func Load() Config {
	// .env is optional; real env vars win.
	godotenv.Load()

	cfg := Config{
		APIURL:   envOr("WIKIDOCS_API_URL", wikidocs.DefaultBaseURL),
		APIToken: os.Getenv("WIKIDOCS_API_TOKEN"),

		CacheDir:    envOr("WIKIDOCS_CACHE_DIR", cache.DefaultDir()),
		CacheMaxAge: envDuration("CACHE_MAX_AGE", cache.DefaultMaxAge),

		SearchMaxResults: envInt("SEARCH_MAX_RESULTS", search.DefaultMaxResults),

		HTTPAddr:   os.Getenv("HTTP_ADDR"),
		HTTPAPIKey: os.Getenv("HTTP_API_KEY"),
	}

	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = cache.DefaultMaxAge
	}
	if cfg.SearchMaxResults <= 0 {
		cfg.SearchMaxResults = search.DefaultMaxResults
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("WIKIDOCS_API_TOKEN is required")
	}
	if c.HTTPAddr != "" && c.HTTPAPIKey == "" {
		return fmt.Errorf("HTTP_API_KEY is required when HTTP_ADDR is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
