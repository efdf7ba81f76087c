// Package api serves dashboard layouts over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /grid/depths
//	POST   /grid/place
//	GET    /organizations/{org}/dashboards/
//	GET    /organizations/{org}/dashboards/{id}/
//	PUT    /organizations/{org}/dashboards/{id}/
//	DELETE /organizations/{org}/dashboards/{id}/
//	POST   /organizations/{org}/dashboards/{id}/widgets/
//	GET    /organizations/{org}/dashboards/{id}/mobile-layout/
//
// Errors are returned as {"code": ..., "detail": ...} with a status derived
// from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/planner"
)

// Server is the HTTP front of a planner.Runner.
type Server struct {
	runner *planner.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer builds the router for runner.
func NewServer(runner *planner.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/grid", func(r chi.Router) {
		r.Post("/depths", s.handleDepths)
		r.Post("/place", s.handlePlace)
	})

	r.Route("/organizations/{org}/dashboards", func(r chi.Router) {
		r.Get("/", s.handleListDashboards)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDashboard)
			r.Put("/", s.handlePutDashboard)
			r.Delete("/", s.handleDeleteDashboard)
			r.Post("/widgets/", s.handleAddWidget)
			r.Get("/mobile-layout/", s.handleMobileLayout)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// instrument reports every request to the HTTP hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
