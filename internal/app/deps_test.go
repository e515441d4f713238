package app

import (
	"testing"
	"time"

	"github.com/mzansigossip/backend/internal/auth"
	"github.com/mzansigossip/backend/internal/config"
	"github.com/mzansigossip/backend/internal/news"
	"github.com/mzansigossip/backend/internal/store"
)

func TestBuildDependencies(t *testing.T) {
	st := store.New(store.Options{MinSongDuration: time.Minute})
	cfg := config.Config{
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		AuthRateRequests: 10,
		AuthRateWindow:   time.Minute,
		AuthRateBurst:    5,
		ShareBaseURL:     "http://localhost:8080",
		TrendingSize:     10,
	}

	deps := buildDependencies(st, auth.NewInMemorySessionStore(), cfg)

	if deps.Users == nil || deps.Friends == nil || deps.Posts == nil ||
		deps.Messages == nil || deps.Notifications == nil || deps.Songs == nil ||
		deps.News == nil {
		t.Fatal("store interfaces not wired")
	}
	if deps.Sessions == nil || deps.AuthLimiter == nil || deps.Prober == nil || deps.Player == nil {
		t.Fatal("auth and music plumbing not wired")
	}
	if deps.ShareBaseURL != cfg.ShareBaseURL || deps.TrendingSize != cfg.TrendingSize {
		t.Fatalf("config values not carried: %+v", deps)
	}
}

func TestBuildNewsProvider(t *testing.T) {
	provider := buildNewsProvider(config.Config{})
	if _, ok := provider.(news.StaticProvider); !ok {
		t.Fatalf("expected the built-in catalog without a feed url, got %T", provider)
	}

	provider = buildNewsProvider(config.Config{NewsFeedURL: "http://news.example/feed", NewsCacheTTL: time.Minute})
	if _, ok := provider.(news.FallbackProvider); !ok {
		t.Fatalf("expected a fallback chain with a feed url, got %T", provider)
	}
}
