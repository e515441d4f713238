package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mzansigossip/backend/internal/auth"
	"github.com/mzansigossip/backend/internal/config"
	"github.com/mzansigossip/backend/internal/handlers"
	"github.com/mzansigossip/backend/internal/httpserver"
	"github.com/mzansigossip/backend/internal/middleware"
	"github.com/mzansigossip/backend/internal/store"
)

// Run bootstraps the gossip club backend application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve or seed")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "seed":
		return runSeed(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	kv, err := store.OpenBolt(cfg.DataPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	writer := store.NewSnapshotWriter(kv, 0, logger)

	st, err := store.Load(kv, store.Options{
		Persister:       writer,
		MinSongDuration: cfg.MinSongDuration,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	sessionStore, err := auth.NewSnapshotSessionStore(kv)
	if err != nil {
		return err
	}

	deps := buildDependencies(st, sessionStore, cfg)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(mux)

	srv := httpserver.New(cfg.AppPort, handler)

	logger.Info("starting http server", "port", cfg.AppPort, "dataPath", cfg.DataPath)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// the server has stopped producing mutations; drain pending snapshots
	return writer.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	kv, err := store.OpenBolt(cfg.DataPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	writer := store.NewSnapshotWriter(kv, 0, logger)

	st, err := store.Load(kv, store.Options{Persister: writer, Logger: logger})
	if err != nil {
		return err
	}

	if err := st.Seed(ctx); err != nil {
		return err
	}

	flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := writer.Flush(flushCtx); err != nil {
		return err
	}
	if err := writer.Shutdown(flushCtx); err != nil {
		return err
	}

	fmt.Println("seeded demo fixture")
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
