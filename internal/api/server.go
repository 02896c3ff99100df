// Package api exposes generation, replay, decode, and exploration over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/explore"
	"github.com/forgelab/gamegen-go/internal/genres"
	"github.com/forgelab/gamegen-go/internal/store"
)

// Version identifies the generator build in responses and logs.
const Version = "1.0.0"

// Server handles HTTP requests.
type Server struct {
	db      store.DB
	scanner *explore.Scanner
	log     logrus.FieldLogger
	limiter *ipLimiter
	started time.Time
}

// Options tune the server surface.
type Options struct {
	// RateRPS and RateBurst shape the per-IP request limit. Zero RateRPS
	// disables limiting.
	RateRPS   float64
	RateBurst int
}

// NewServer wires the API against a store.
func NewServer(db store.DB, log logrus.FieldLogger, opts Options) *Server {
	return &Server{
		db:      db,
		scanner: explore.NewScanner(),
		log:     log,
		limiter: newIPLimiter(opts.RateRPS, opts.RateBurst),
		started: time.Now(),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.healthCheck)
	r.Use(s.rateLimit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/scenario", s.handleScenario)
		r.Get("/specs", s.handleListSpecs)
		r.Get("/specs/{code}", s.handleGetSpec)
		r.Post("/decode", s.handleDecode)
		r.Post("/explore", s.handleExplore)
	})

	return r
}

// healthCheck answers /health ahead of the rate limiter so load balancer
// probes never compete with client traffic for tokens.
func (s *Server) healthCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": Version,
			"uptime":  time.Since(s.started).String(),
			"genres":  append([]choices.Genre{choices.GenreAction}, genres.List()...),
		})
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Warn("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// requestLogger emits one structured line per completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
			"bytes":      ww.BytesWritten(),
		}).Info("request completed")
	})
}
