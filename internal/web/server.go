// Package web serves the dashboard API: JSON views of the aggregation
// engine's output for a single in-memory event table.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsimons/spotify-history-tools/internal/history"
)

// DefaultAddr is the default listen address.
const DefaultAddr = "127.0.0.1:8080"

// Config holds server configuration.
type Config struct {
	Addr   string
	Events []history.Event
}

// Server is the dashboard API server.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer builds the router over the given event table.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	handlers := NewHandlers(cfg.Events)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/overview", handlers.Overview)
		r.Get("/artists/top", handlers.TopArtists)
		r.Get("/albums/top", handlers.TopAlbums)
		r.Get("/songs/top", handlers.TopSongs)
		r.Get("/leaderboard/tracks/{year}", handlers.TrackLeaderboard)
		r.Get("/leaderboard/albums/{year}", handlers.AlbumLeaderboard)
		r.Get("/heatmap/{year}", handlers.Heatmap)
		r.Get("/rank/artist", handlers.ArtistRank)
		r.Get("/stats", handlers.Stats)
		r.Get("/months", handlers.Months)
	})

	return &Server{
		router:   router,
		handlers: handlers,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dashboard API listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
