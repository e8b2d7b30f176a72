package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sozercan/platform-compare/apimodels"
	"github.com/sozercan/platform-compare/internal/compare"
	"github.com/sozercan/platform-compare/internal/config"
)

const (
	maxBodyBytes = 1 << 20

	invalidBodyMessage = `Invalid request body. Expected JSON with a "query" field.`
	statusMessage      = `API route is active. Use POST requests with a "query" in the body. Uses File API for PDFs.`
)

// Comparer is implemented by *compare.Service.
type Comparer interface {
	Ready() error
	Compare(ctx context.Context, query string) (*apimodels.CompareResponse, error)
}

type Server struct {
	cfg      config.ServerConfig
	router   *chi.Mux
	comparer Comparer
	page     http.Handler
}

// New wires the API routes. page serves the browser form at "/" and may be nil.
func New(cfg config.ServerConfig, comparer Comparer, page http.Handler) *Server {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		comparer: comparer,
		page:     page,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	if s.page != nil {
		s.router.Get("/", s.page.ServeHTTP)
		s.router.Post("/", s.page.ServeHTTP)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/compare", s.handleCompare)
		r.Get("/compare", s.handleStatus)
		r.Get("/health", s.handleHealth)
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling compare request", "request_id", middleware.GetReqID(r.Context()))

	// a missing credential fails before the body is even read
	if err := s.comparer.Ready(); err != nil {
		slog.Error("API route error: credential is missing")
		writeError(w, compare.StatusOf(err), compare.MessageOf(err))
		return
	}

	var req apimodels.CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		slog.Error("Error parsing request body", "error", err)
		writeError(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	result, err := s.comparer.Compare(r.Context(), req.Query)
	if err != nil {
		var cerr *compare.Error
		if !errors.As(err, &cerr) {
			slog.Error("API handler error", "error", err)
		}
		writeError(w, compare.StatusOf(err), compare.MessageOf(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.StatusResponse{Message: statusMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recoverer turns a panic into the JSON 500 every API client expects.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("Recovered from panic", "panic", rec, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
			writeError(w, http.StatusInternalServerError, compare.ErrUnexpected.Message)
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: message})
}
