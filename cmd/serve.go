package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP API server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	users := repositories.NewUserRepository(db)
	playlists := repositories.NewPlaylistRepository(db)
	songs := repositories.NewSongRepository(db)
	playlistSongs := repositories.NewPlaylistSongRepository(db)

	router := server.NewBasicRouter()
	router.Use(
		server.Recover(r.logger),
		server.RequestLogger(r.logger),
		server.CORS(),
		server.RateLimit(config.Server.RateLimitPerSec, config.Server.RateLimitBurst),
	)

	router.Handler(server.NewUserHandler(users, r.logger, config.Auth.BcryptCost))
	router.Handler(server.NewPlaylistHandler(playlists, playlistSongs, r.logger))
	router.Handler(server.NewSongHandler(songs, r.logger))
	router.Handler(server.NewHealthHandler(users, songs, r.logger))

	srv := &http.Server{
		Addr:         config.Server.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		r.logger.Info("shutting down", "signal", sig)
	case <-ctx.Done():
		r.logger.Info("shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	r.logger.Info("server stopped")
	return nil
}
