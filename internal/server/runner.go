// Package server runs the nextdash dashboard: it builds the upstream client and
// the HTTP API from configuration and owns their lifecycle.
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
	"strconv"
	"syscall"
	"time"

	"github.com/jroosing/nextdash/internal/api"
	"github.com/jroosing/nextdash/internal/api/middleware"
	"github.com/jroosing/nextdash/internal/config"
	"github.com/jroosing/nextdash/internal/nextdns"
)

const defaultShutdownTimeout = 10 * time.Second

// Runner orchestrates the dashboard startup, configuration, and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new server runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// NewClient builds the upstream client from configuration. A missing API key
// is reported but not fatal; upstream calls will fail until it is set.
func NewClient(cfg *config.Config, logger *slog.Logger) *nextdns.Client {
	if cfg.Upstream.APIKey == "" && logger != nil {
		logger.Error(config.APIKeyEnvVar + " is not configured")
	}
	return nextdns.New(nextdns.Options{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
}

// Run starts the dashboard and blocks until SIGINT or SIGTERM.
//
// Server lifecycle:
//  1. Build the upstream client
//  2. Bind the listener
//  3. Serve the API and embedded UI
//  4. Wait for shutdown signal
//  5. Drain in-flight requests within server.shutdown_timeout
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext binds server.host:server.port and serves until ctx is canceled.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return r.RunWithListener(ctx, cfg, ln)
}

// RunWithListener serves on ln until ctx is canceled or the server fails.
// The listener is closed on return.
func (r *Runner) RunWithListener(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	client := NewClient(cfg, r.logger)
	srv := api.New(cfg, client, r.logger)

	r.logStartup(cfg, ln.Addr().String(), client)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		// shutdown requested
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if r.logger != nil {
		r.logger.Info("shutting down", "timeout", timeout.String())
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logStartup logs server configuration at startup.
func (r *Runner) logStartup(cfg *config.Config, addr string, client *nextdns.Client) {
	if r.logger == nil {
		return
	}
	r.logger.Info(
		"dashboard listening",
		"addr", addr,
		"upstream", client.BaseURL(),
		"upstream_key", client.HasCredential(),
		"api_key", cfg.Server.APIKey != "",
		"ui", cfg.UI.Enabled,
	)
	if cfg.RateLimit.Enabled() {
		r.logger.Info("rate limits", "effective", middleware.FormatRateLimitsLog(api.RateLimitSettings(cfg.RateLimit)))
	}
}
