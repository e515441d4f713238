package app

import (
	"github.com/mzansigossip/backend/internal/auth"
	"github.com/mzansigossip/backend/internal/config"
	"github.com/mzansigossip/backend/internal/handlers"
	"github.com/mzansigossip/backend/internal/middleware"
	"github.com/mzansigossip/backend/internal/music"
	"github.com/mzansigossip/backend/internal/news"
	"github.com/mzansigossip/backend/internal/store"
)

// buildDependencies wires together concrete implementations used by the
// HTTP handlers.
func buildDependencies(st *store.Store, sessionStore auth.SessionStore, cfg config.Config) handlers.Dependencies {
	newsProvider := buildNewsProvider(cfg)

	return handlers.Dependencies{
		Users:         st,
		Sessions:      auth.NewManager(cfg.AccessTokenTTL, cfg.RefreshTokenTTL, sessionStore),
		Friends:       st,
		Posts:         st,
		Messages:      st,
		Notifications: st,
		Songs:         st,
		News:          st,
		NewsProvider:  newsProvider,
		Prober:        music.FileProber{},
		Player:        music.NewPlayer(),
		AuthLimiter:   middleware.NewKeyRateLimiter(cfg.AuthRateRequests, cfg.AuthRateWindow, cfg.AuthRateBurst, 10*cfg.AuthRateWindow),
		ShareBaseURL:  cfg.ShareBaseURL,
		TrendingSize:  cfg.TrendingSize,
	}
}

// buildNewsProvider assembles the news catalog source: the built-in catalog
// by default, or a cached remote feed that falls back to the built-in
// catalog when the remote misbehaves.
func buildNewsProvider(cfg config.Config) handlers.NewsProvider {
	static := news.StaticProvider{}
	if cfg.NewsFeedURL == "" {
		return static
	}

	remote := news.NewHTTPProvider(cfg.NewsFeedURL, 0)
	cached := news.NewCachingProvider(remote, cfg.NewsCacheTTL)
	return news.FallbackProvider{Primary: cached, Fallback: static}
}
