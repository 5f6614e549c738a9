// Package config loads and validates nextdash configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML (or TOML/JSON) file, and environment variables prefixed with NEXTDASH_
// (e.g. NEXTDASH_SERVER_PORT). The upstream credential is also read from
// NEXTDNS_API_KEY.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configEnvVar = "NEXTDASH_CONFIG"
	envPrefix    = "NEXTDASH"

	// APIKeyEnvVar is the conventional variable holding the upstream credential.
	APIKeyEnvVar = "NEXTDNS_API_KEY"

	DefaultBaseURL = "https://api.nextdns.io"
)

// ResolveConfigPath picks the config file: the flag value, else NEXTDASH_CONFIG,
// else "" meaning defaults and environment only.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(configEnvVar))
}

// Load builds a validated Config. An empty path skips the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("upstream.api_key", envPrefix+"_UPSTREAM_API_KEY", APIKeyEnvVar); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("upstream.base_url", DefaultBaseURL)
	v.SetDefault("upstream.timeout", "0s")

	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("logging.include_pid", false)
	v.SetDefault("logging.extra_fields", map[string]string{})

	v.SetDefault("rate_limit.cleanup_seconds", 60.0)
	v.SetDefault("rate_limit.max_ip_entries", 4096)
	v.SetDefault("rate_limit.global_qps", 0.0)
	v.SetDefault("rate_limit.global_burst", 100)
	v.SetDefault("rate_limit.ip_qps", 0.0)
	v.SetDefault("rate_limit.ip_burst", 20)

	v.SetDefault("ui.enabled", true)
}

// Validate normalizes the configuration and checks it against its field rules.
func (cfg *Config) Validate() error {
	cfg.Server.Host = strings.TrimSpace(cfg.Server.Host)
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	cfg.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Upstream.BaseURL), "/")
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultBaseURL
	}
	cfg.Upstream.APIKey = strings.TrimSpace(cfg.Upstream.APIKey)

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	cfg.Logging.StructuredFormat = strings.ToLower(cfg.Logging.StructuredFormat)
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	if cfg.RateLimit.CleanupSeconds == 0 {
		cfg.RateLimit.CleanupSeconds = 60
	}

	if err := validate.Struct(cfg); err != nil {
		return convertValidatorErrors(err)
	}
	return nil
}

// ValidationError is one rejected field, addressed by its config key.
type ValidationError struct {
	FieldPath string
	Message   string
}

// ValidationErrors collects every rejected field of a Config.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid configuration (%d error(s)):", len(ve))
	for _, e := range ve {
		fmt.Fprintf(&sb, " %s: %s;", e.FieldPath, e.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func convertValidatorErrors(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate config: %w", err)
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is "Config.server.port"; drop the root type name.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, ValidationError{FieldPath: path, Message: validationMessage(fe)})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}
