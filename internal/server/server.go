// Package server wires the display service and the sample menu API into chi
// routers and runs them with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/menuboard/internal/config"
	"github.com/Lixing-Zhang/menuboard/internal/display"
	"github.com/Lixing-Zhang/menuboard/internal/handlers"
	"github.com/Lixing-Zhang/menuboard/internal/metrics"
	"github.com/Lixing-Zhang/menuboard/internal/middleware"
	"github.com/Lixing-Zhang/menuboard/internal/render"
	"github.com/Lixing-Zhang/menuboard/internal/service"
	"github.com/Lixing-Zhang/menuboard/internal/web"
)

const requestTimeout = 60 * time.Second

// Upstream is the menu API as the display service uses it.
type Upstream interface {
	display.Source
	handlers.Pinger
}

// DisplayDeps are the collaborators of the display router.
type DisplayDeps struct {
	Upstream       Upstream
	Renderer       *render.Renderer
	Metrics        *metrics.Recorder
	Logger         *slog.Logger
	AllowedOrigins []string
	ReadyTimeout   time.Duration
}

// NewDisplayRouter routes the page, its fragments, static assets and the
// operational endpoints.
func NewDisplayRouter(d DisplayDeps) http.Handler {
	r := chi.NewRouter()
	useCommon(r, d.Logger, d.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", chimiddleware.RequestIDHeader},
		MaxAge:         300,
	}))

	pages := handlers.NewPageHandler(d.Upstream, d.Renderer, d.Metrics, d.Logger)

	r.Get("/health", handlers.NewHealthHandler(d.Logger).ServeHTTP)
	r.Get("/ready", handlers.NewReadinessHandler(d.Upstream, d.ReadyTimeout, d.Logger).ServeHTTP)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	r.Method(http.MethodGet, "/static/*", http.StripPrefix("/static", web.Handler()))

	r.Get("/", pages.Page)
	r.Route("/fragments", func(r chi.Router) {
		r.Get("/tabs", pages.Tabs)
		r.Get("/menus", pages.Menus)
	})

	return r
}

// NewSampleAPIRouter routes the sample menu REST API under /api/v1. /metrics
// is mounted when rec is non-nil.
func NewSampleAPIRouter(svc *service.MenuService, rec *metrics.Recorder, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	useCommon(r, logger, rec)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	menus := handlers.NewMenuHandler(svc, logger)

	r.Get("/health", handlers.NewHealthHandler(logger).ServeHTTP)
	if rec != nil {
		r.Method(http.MethodGet, "/metrics", rec.Handler())
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", menus.ListCategories)
		r.Get("/menus", menus.ListMenus)
		r.Get("/menus/{menuId}", menus.GetMenu)
	})

	return r
}

func useCommon(r chi.Router, logger *slog.Logger, rec *metrics.Recorder) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(rec))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
}

// NewHTTPServer applies the configured timeouts to handler.
func NewHTTPServer(addr string, handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}

// Run serves until ctx is done, then shuts down gracefully within
// shutdownTimeout. A listener failure is returned immediately.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-errCh

	logger.Info("server stopped gracefully")
	return nil
}
