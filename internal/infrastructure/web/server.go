package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"legtracker/internal/logging"
	"legtracker/internal/usecase"
)

// BuildProvider hands out the build currently being served.
type BuildProvider interface {
	Current() (*usecase.Build, bool)
}

// Server serves the pages of the current build.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	builds          BuildProvider
	renderer        *Renderer
	logger          *slog.Logger
	mux             *http.ServeMux
}

// NewServer registers the page routes.
func NewServer(addr string, shutdownTimeout time.Duration, builds BuildProvider, renderer *Renderer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	s := &Server{
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		builds:          builds,
		renderer:        renderer,
		logger:          logger,
		mux:             http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /sponsors", s.handleSponsors)
	s.mux.HandleFunc("GET /representatives", s.handleRepresentatives)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	build, ok := s.current(w)
	if !ok {
		return
	}
	s.write(w, func(buf *bytes.Buffer) error { return s.renderer.RenderIndex(buf, build.Index) })
}

func (s *Server) handleSponsors(w http.ResponseWriter, r *http.Request) {
	build, ok := s.current(w)
	if !ok {
		return
	}
	s.write(w, func(buf *bytes.Buffer) error { return s.renderer.RenderSponsors(buf, build.Sponsors) })
}

func (s *Server) handleRepresentatives(w http.ResponseWriter, r *http.Request) {
	build, ok := s.current(w)
	if !ok {
		return
	}
	page := build.RepresentativesFor(r.URL.Query().Get("office"))
	s.write(w, func(buf *bytes.Buffer) error { return s.renderer.RenderRepresentatives(buf, page) })
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	build, ok := s.builds.Current()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no build yet\n"))
		return
	}
	_, _ = fmt.Fprintf(w, "ok %s %s\n", build.ID, build.GeneratedAt.UTC().Format(time.RFC3339))
}

func (s *Server) current(w http.ResponseWriter) (*usecase.Build, bool) {
	build, ok := s.builds.Current()
	if !ok {
		http.Error(w, "dashboard is still building, retry shortly", http.StatusServiceUnavailable)
		return nil, false
	}
	return build, true
}

// write renders into a buffer first so a template failure never sends a
// half-written page.
func (s *Server) write(w http.ResponseWriter, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
