package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/docsight/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/docsight/internal/api/middlewares"
	"github.com/markdave123-py/docsight/internal/config"
	"github.com/markdave123-py/docsight/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, svc *services.DocumentService) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

func newRouter(cfg *config.Config, svc *services.DocumentService) http.Handler {
	ocrHandler := handlers.NewOCRHandler(svc, cfg.MaxUploadBytes())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// public endpoints
	r.Get("/health", handlers.Health)

	// extraction endpoints, behind a bearer token when JWT_SECRET is set
	r.Group(func(ocr chi.Router) {
		if cfg.AuthEnabled() {
			ocr.Use(appMiddleware.JWTMiddleware(cfg.JWTSecret))
		}
		ocr.Post("/ocr", ocrHandler.ExtractFile)
		ocr.Post("/ocr/url", ocrHandler.ExtractURL)
	})

	return r
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
