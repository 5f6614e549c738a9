// Package handlers implements the REST API endpoint handlers for nextdash.
//
// REST API Endpoints:
//
// System Health:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Server statistics (uptime, memory, process, upstream counters)
//   - GET /api/v1/config - Current configuration (secrets redacted)
//
// Profile:
//   - GET /api/v1/profiles/:id - Fetch a profile
//   - PATCH /api/v1/profiles/:id - Partially update a profile
//
// Settings:
//   - GET, PATCH /api/v1/profiles/:id/security
//   - GET, PATCH /api/v1/profiles/:id/privacy
//   - GET, PATCH /api/v1/profiles/:id/parental-control
//
// Lists:
//   - GET, POST /api/v1/profiles/:id/allowlist
//   - DELETE /api/v1/profiles/:id/allowlist/:domain
//   - GET, POST /api/v1/profiles/:id/denylist
//   - DELETE /api/v1/profiles/:id/denylist/:domain
//
// Reports:
//   - GET /api/v1/profiles/:id/analytics - Query status aggregate, query string forwarded
//   - GET /api/v1/profiles/:id/logs - Query log, query string forwarded
//
// Every profile endpoint is a pass-through to the upstream API. The upstream
// credential never leaves the server. List, analytics and log reads answer 200
// with an empty body when the upstream fails and flag it with the
// X-Upstream-Degraded header.
//
// Authentication:
//
// When server.api_key is configured, every /api/v1 endpoint requires the
// X-API-Key header.
//
// @title nextdash API
// @version 1.0
// @description Server-side proxy for managing a NextDNS profile from the browser.
//
// @contact.name nextdash
// @contact.url https://github.com/jroosing/nextdash
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/nextdash/internal/config"
	"github.com/jroosing/nextdash/internal/nextdns"
)

// ProxyClient is the subset of *nextdns.Client the handlers depend on.
type ProxyClient interface {
	GetProfile(ctx context.Context, profileID string) (*nextdns.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, fields map[string]any) (*nextdns.Profile, error)
	GetSettings(ctx context.Context, profileID string, group nextdns.SettingsGroup) (nextdns.Settings, error)
	UpdateSettings(ctx context.Context, profileID string, group nextdns.SettingsGroup, settings nextdns.Settings) (nextdns.Settings, error)
	FetchList(ctx context.Context, kind nextdns.ListKind, profileID string) nextdns.Result[[]nextdns.ListEntry]
	AddToList(ctx context.Context, kind nextdns.ListKind, profileID, domain string) (*nextdns.ListEntry, error)
	RemoveFromList(ctx context.Context, kind nextdns.ListKind, profileID, domain string) error
	FetchAnalytics(ctx context.Context, profileID string, params map[string]string) nextdns.Result[nextdns.AnalyticsSnapshot]
	FetchLogs(ctx context.Context, profileID string, params map[string]string) nextdns.Result[[]nextdns.LogEntry]
	Stats() nextdns.Stats
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	client    ProxyClient
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler. A nil logger discards handler logs.
func New(cfg *config.Config, client ProxyClient, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		cfg:       cfg,
		client:    client,
		logger:    logger,
		startTime: time.Now(),
	}
}
