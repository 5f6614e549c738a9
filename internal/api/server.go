// Package api provides the nextdash HTTP server.
// It exposes the profile proxy endpoints, health and statistics, the redacted
// configuration, Swagger docs and the embedded browser dashboard via Gin.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/handlers"
	"github.com/jroosing/nextdash/internal/api/middleware"
	"github.com/jroosing/nextdash/internal/config"
)

// Server is the dashboard HTTP server.
//
// Security note: the proxy acts with the upstream credential on behalf of any
// caller. Do not expose it to untrusted networks without server.api_key.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the server. client may be nil only in tests that do not touch
// the proxy routes.
func New(cfg *config.Config, client handlers.ProxyClient, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.SlogRequestLogger(logger))

	h := handlers.New(cfg, client, logger)
	RegisterRoutes(engine, h, cfg)

	if cfg.UI.Enabled {
		MountSPA(engine, logger)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       orDefault(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout:      orDefault(cfg.Server.WriteTimeout, 60*time.Second),
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, httpServer: httpServer}
}

func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l; used when the caller owns the listener.
func (s *Server) Serve(l net.Listener) error {
	return s.httpServer.Serve(l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
