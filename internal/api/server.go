package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dxascend/ascend-core/internal/infrastructure/config"
	"github.com/dxascend/ascend-core/internal/infrastructure/database"
	"github.com/dxascend/ascend-core/internal/infrastructure/logging"
	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
	"github.com/dxascend/ascend-core/internal/view"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// HealthChecker is implemented by optional components reported on /api/health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	Logger   *logging.Logger
	DB       *database.DB
	Projects project.Repository
	Objects  *objecttree.Service
	Composer *view.Composer
	Resolver *view.RouteResolver

	// Optional components; nil means disabled.
	MQTT     HealthChecker
	InfluxDB HealthChecker

	Version string
}

// Server is the HTTP API server for DX-Ascend Core.
//
// The server is created with New() and started with Start().
type Server struct {
	cfg      config.APIConfig
	logger   *logging.Logger
	db       *database.DB
	projects project.Repository
	objects  *objecttree.Service
	composer *view.Composer
	resolver *view.RouteResolver
	mqtt     HealthChecker
	influx   HealthChecker
	version  string
	server   *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called. It fails when a
// required dependency is missing.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger is required")
	case deps.DB == nil:
		return nil, fmt.Errorf("database is required")
	case deps.Projects == nil:
		return nil, fmt.Errorf("project repository is required")
	case deps.Objects == nil:
		return nil, fmt.Errorf("system object service is required")
	case deps.Composer == nil || deps.Resolver == nil:
		return nil, fmt.Errorf("runtime composer and route resolver are required")
	}

	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		db:       deps.DB,
		projects: deps.Projects,
		objects:  deps.Objects,
		composer: deps.Composer,
		resolver: deps.Resolver,
		mqtt:     deps.MQTT,
		influx:   deps.InfluxDB,
		version:  deps.Version,
	}, nil
}

// Handler returns the routed HTTP handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close(). Starting twice is an error.
func (s *Server) Start(_ context.Context) error {
	if s.server != nil {
		return fmt.Errorf("api server already started")
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
