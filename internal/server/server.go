package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tkilaker/articles/internal/config"
	"github.com/tkilaker/articles/internal/database"
	"go.uber.org/zap"
)

// ArticleStore is the persistence the handlers depend on.
// *database.DB implements it.
type ArticleStore interface {
	CreateArticle(ctx context.Context, title, content, author string) (*database.Article, error)
	ListArticles(ctx context.Context) ([]*database.Article, error)
	UpdateArticle(ctx context.Context, id int64, upd database.ArticleUpdate) (*database.Article, error)
	DeleteArticle(ctx context.Context, id int64) (*database.Article, error)
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	http    *http.Server
	store   ArticleStore
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics
}

// New creates a new server instance
func New(store ArticleStore, cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		store:   store,
		config:  cfg,
		logger:  logger,
		metrics: newMetrics(),
	}
	s.http = &http.Server{Handler: s.router}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(s.metrics.middleware)
	s.router.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	// Routes
	s.router.Route("/articles", func(r chi.Router) {
		r.Post("/", s.handleCreateArticle)
		r.Get("/", s.handleListArticles)
		r.Patch("/{id}", s.handleUpdateArticle)
		r.Delete("/{id}", s.handleDeleteArticle)
	})
	s.router.Get("/rss.xml", s.handleRSS)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Ping(r.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Router returns the Chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start listens on addr and blocks until the server stops.
// It returns nil after a graceful Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", zap.String("addr", addr))
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
