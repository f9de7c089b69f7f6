package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/rickgao/niche-research/internal/config"
	"github.com/rickgao/niche-research/internal/feed"
	"github.com/rickgao/niche-research/internal/provider"
	"github.com/rickgao/niche-research/internal/view"
)

// Check is a named dependency probe reported by /health.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Deps are the components the server exposes.
type Deps struct {
	Provider provider.Provider
	Source   string    // provider source name, reported by /health
	Feed     *feed.Hub // nil disables /ws/feed
	Checks   []Check
}

// Server is the researchd HTTP server.
type Server struct {
	cfg      config.ServerConfig
	deps     Deps
	logger   *slog.Logger
	engine   *gin.Engine
	views    *view.Controller
	sessions *view.Sessions

	httpServer *http.Server
	listener   net.Listener
	wg         sync.WaitGroup
}

// New creates a Server and registers its routes.
func New(cfg config.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		logger:   logger,
		engine:   gin.New(),
		views:    view.NewController(deps.Provider, logger),
		sessions: view.NewSessions(),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "err", err)
		}
	}()

	s.logger.Info("http server started", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop cancels in-flight view loads and shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.sessions.CloseAll()

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.wg.Wait()

	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) routes() {
	r := s.engine
	r.Use(requestID())
	r.Use(requestLogger(s.logger))
	r.Use(recovery(s.logger))
	r.Use(cors())

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/products", s.listProducts)
		v1.GET("/trends", s.listTrends)
		v1.GET("/alerts", s.listAlerts)

		companies := v1.Group("/companies")
		{
			companies.GET("/:id", s.getCompany)
			companies.GET("/:id/products", s.listCompanyProducts)
		}
	}

	views := r.Group("/views")
	{
		views.GET("/dashboard", s.dashboardView)
		views.GET("/compare", s.comparisonView)
		views.GET("/company/:id", s.companyView)
		views.GET("/opportunities", s.opportunitiesView)
	}

	if s.deps.Feed != nil {
		r.GET("/ws/feed", gin.WrapH(s.deps.Feed))
	}
}
