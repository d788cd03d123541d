// Package server exposes a club over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/club"
	"github.com/etnz/club/advisor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Config holds the server dependencies.
type Config struct {
	Log     zerolog.Logger
	Club    *club.Club
	Advisor *advisor.Advisor // optional
	Addr    string
}

// Server is the HTTP API.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	club    *club.Club
	advisor *advisor.Advisor
	calls   *advisor.Calls
}

// New returns a server ready to Start.
func New(cfg Config) *Server {
	if cfg.Advisor == nil {
		cfg.Advisor = advisor.New(nil, "", cfg.Log)
	}
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		club:    cfg.Club,
		advisor: cfg.Advisor,
		calls:   advisor.NewCalls(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/club", s.handleClub)
	s.router.Get("/portfolios/{id}", s.handlePortfolio)
	s.router.Get("/members/{id}/report", s.handleMemberReport)
	s.router.Get("/performance", s.handlePerformance)
	s.router.Get("/risk", s.handleRisk)
	s.router.Get("/allocation", s.handleAllocation)

	s.router.Post("/transactions", s.handleAddTransaction)
	s.router.Post("/members", s.handleAddMember)
	s.router.Post("/stress", s.handleStress)

	s.router.Route("/advice/{control}", func(r chi.Router) {
		r.Post("/", s.handleStartAdvice)
		r.Get("/", s.handleGetAdvice)
	})
}

// Start listens until Shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusOf maps domain errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, club.ErrMissingField),
		errors.Is(err, club.ErrUnknownType),
		errors.Is(err, club.ErrUnknownPortfolio),
		errors.Is(err, club.ErrOutOfOrder):
		return http.StatusBadRequest
	case errors.Is(err, club.ErrUnknownMember):
		return http.StatusNotFound
	case errors.Is(err, club.ErrDuplicateMember):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
