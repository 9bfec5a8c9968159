package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"Devnovate/internal/config"
	"Devnovate/internal/handlers"
	"Devnovate/internal/logging"
	"Devnovate/internal/seed"
	"Devnovate/internal/sessions"
	"Devnovate/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Server.Addr(), "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger, ln); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run поднимает хранилище и HTTP-сервер на ln и блокируется до отмены ctx.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, ln net.Listener) error {
	cat, err := seed.Load(cfg.Content.SeedPath)
	if err != nil {
		ln.Close()
		return fmt.Errorf("load seed: %w", err)
	}

	st := store.New(store.WithLogger(logger.With("component", "store")))
	st.Seed(cat.Articles, cat.Comments)
	logger.Info("store seeded", "articles", len(cat.Articles), "comments", len(cat.Comments))

	sm := sessions.New(cfg.Session.Secret, cfg.Session.MaxAgeSeconds, cfg.Session.Secure)
	h := handlers.New(st, sm, cfg, logger.With("component", "http"))

	srv := &http.Server{
		Handler:      h.Routes(cfg.Server.RequestTimeout),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
