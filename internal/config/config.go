package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures the runtime configuration for the gossip club service.
type Config struct {
	AppPort         int
	DataPath        string
	LogLevel        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// MinSongDuration is the upload policy floor. The source variants disagree
	// (60s vs 120s), so it is a knob rather than a constant.
	MinSongDuration time.Duration
	TrendingSize    int

	ShareBaseURL string

	// NewsFeedURL points at an optional remote news backend. Empty means the
	// built-in catalog is served; remote failures also fall back to it.
	NewsFeedURL  string
	NewsCacheTTL time.Duration

	AuthRateRequests int
	AuthRateWindow   time.Duration
	AuthRateBurst    int
}

// Load reads configuration from environment variables, applying sensible
// defaults for local development while allowing overrides per variable.
func Load() (Config, error) {
	cfg := Config{
		AppPort:          getInt("GOSSIP_PORT", 8080),
		DataPath:         getString("GOSSIP_DATA_PATH", "gossipclub.db"),
		LogLevel:         getString("GOSSIP_LOG_LEVEL", "info"),
		AccessTokenTTL:   getDuration("GOSSIP_ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:  getDuration("GOSSIP_REFRESH_TOKEN_TTL", 24*time.Hour),
		MinSongDuration:  getDuration("GOSSIP_MIN_SONG_DURATION", 60*time.Second),
		TrendingSize:     getInt("GOSSIP_TRENDING_SIZE", 10),
		ShareBaseURL:     getString("GOSSIP_SHARE_BASE_URL", "http://localhost:8080"),
		NewsFeedURL:      getString("GOSSIP_NEWS_FEED_URL", ""),
		NewsCacheTTL:     getDuration("GOSSIP_NEWS_CACHE_TTL", 15*time.Minute),
		AuthRateRequests: getInt("GOSSIP_AUTH_RATE_REQUESTS", 10),
		AuthRateWindow:   getDuration("GOSSIP_AUTH_RATE_WINDOW", time.Minute),
		AuthRateBurst:    getInt("GOSSIP_AUTH_RATE_BURST", 5),
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
