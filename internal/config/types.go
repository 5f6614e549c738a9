package config

import "time"

// ServerConfig contains the dashboard HTTP listener settings.
//
// Note: APIKey protects the dashboard's own /api/v1 routes. It is a different
// secret from UpstreamConfig.APIKey and is never returned by API endpoints.
type ServerConfig struct {
	Host            string        `mapstructure:"host" json:"host" validate:"required"`
	Port            int           `mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	APIKey          string        `mapstructure:"api_key" json:"-"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"min=0"`
}

// UpstreamConfig contains the upstream filtering API settings.
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key" json:"-"`
	// Timeout bounds one upstream exchange (e.g. "10s"). Zero leaves it unbounded.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" validate:"min=0"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `mapstructure:"level" json:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	Structured       bool              `mapstructure:"structured" json:"structured"`
	StructuredFormat string            `mapstructure:"structured_format" json:"structured_format" validate:"oneof=json text keyvalue"`
	IncludePID       bool              `mapstructure:"include_pid" json:"include_pid"`
	ExtraFields      map[string]string `mapstructure:"extra_fields" json:"extra_fields,omitempty"`
}

// RateLimitConfig controls per-client and global request limits on the
// dashboard API. A QPS of 0 disables that limiter.
type RateLimitConfig struct {
	// CleanupSeconds is how often idle client entries are dropped (default: 60)
	CleanupSeconds float64 `mapstructure:"cleanup_seconds" json:"cleanup_seconds" validate:"min=0"`
	// MaxIPEntries is the maximum number of tracked client IPs (default: 4096)
	MaxIPEntries int `mapstructure:"max_ip_entries" json:"max_ip_entries" validate:"min=0"`
	// GlobalQPS is the server-wide request rate (default: 0, disabled)
	GlobalQPS float64 `mapstructure:"global_qps" json:"global_qps" validate:"min=0"`
	// GlobalBurst is the global burst size (default: 100)
	GlobalBurst int `mapstructure:"global_burst" json:"global_burst" validate:"min=0"`
	// IPQPS is the per-client request rate (default: 0, disabled)
	IPQPS float64 `mapstructure:"ip_qps" json:"ip_qps" validate:"min=0"`
	// IPBurst is the per-client burst size (default: 20)
	IPBurst int `mapstructure:"ip_burst" json:"ip_burst" validate:"min=0"`
}

// Enabled reports whether any limiter is active.
func (r RateLimitConfig) Enabled() bool {
	return r.GlobalQPS > 0 || r.IPQPS > 0
}

// UIConfig controls the embedded browser dashboard.
type UIConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" json:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream" json:"upstream"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" json:"rate_limit"`
	UI        UIConfig        `mapstructure:"ui" json:"ui"`
}
