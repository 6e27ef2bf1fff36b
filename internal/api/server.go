// Package api exposes the scrape operations over a local HTTP API.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/pkg/models"
)

// Scraper is the part of session.Orchestrator the API drives
type Scraper interface {
	ScrapeCurrentPage(ctx context.Context, pageURL string, hint models.Platform) (models.ListResult, error)
	ScrapeDetail(ctx context.Context, pageURL string, hint models.Platform) (*models.JobDetail, bool, error)
	RunAll(ctx context.Context, targets []session.Target, parallel int, onProgress session.ProgressFunc) (*session.BatchResult, error)
}

// Server routes API requests to a Scraper
type Server struct {
	router      *chi.Mux
	scraper     Scraper
	registry    *platform.Registry
	store       state.Store
	maxParallel int
}

// NewServer creates a Server. maxParallel caps the parallel field of
// session requests.
func NewServer(scraper Scraper, registry *platform.Registry, store state.Store, maxParallel int) *Server {
	if maxParallel < 1 {
		maxParallel = 1
	}
	s := &Server{
		router:      chi.NewRouter(),
		scraper:     scraper,
		registry:    registry,
		store:       store,
		maxParallel: maxParallel,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/platforms", s.handlePlatforms)
		r.Get("/state", s.handleState)
		r.Post("/scrape", s.handleScrape)
		r.Post("/detail", s.handleDetail)
		r.Post("/sessions", s.handleSessions)
	})
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("API request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
