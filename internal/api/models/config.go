package models

import "github.com/jroosing/nextdash/internal/config"

// ServerConfigResponse is ServerConfig without the dashboard API key.
type ServerConfigResponse struct {
	Host             string `json:"host"`
	Port             int    `json:"port"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// UpstreamConfigResponse is UpstreamConfig without the credential.
type UpstreamConfigResponse struct {
	BaseURL          string `json:"base_url"`
	Timeout          string `json:"timeout"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// ConfigResponse is the API response for GET /config.
type ConfigResponse struct {
	Server    ServerConfigResponse   `json:"server"`
	Upstream  UpstreamConfigResponse `json:"upstream"`
	Logging   config.LoggingConfig   `json:"logging"`
	RateLimit config.RateLimitConfig `json:"rate_limit"`
	UI        config.UIConfig        `json:"ui"`
}
