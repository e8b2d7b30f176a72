package server

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
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sozercan/platform-compare/internal/config"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	httpServer *http.Server
}

// New builds the listener configuration around handler, with access logging.
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:      accessLog(handler),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		began := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "Request served",
			slog.Group("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
			),
			"elapsed", time.Since(began),
			"peer", r.RemoteAddr,
		)
	})
}

// Run blocks until SIGINT or SIGTERM.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens until ctx ends and then drains open requests for up to
// shutdownTimeout.
func (s *Server) Serve(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", s.httpServer.Addr)
		listenErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	case <-ctx.Done():
	}

	slog.Info("Draining open requests", "deadline", shutdownTimeout)
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	return nil
}
