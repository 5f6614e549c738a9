package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jroosing/nextdash/internal/config"
	"github.com/jroosing/nextdash/internal/logging"
	"github.com/jroosing/nextdash/internal/server"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	host       string
	port       int
	jsonLogs   bool
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nextdash",
		Short: "Web dashboard for NextDNS profiles",
		Long: `nextdash serves a browser dashboard for a NextDNS profile and proxies its
API calls server-side, so the upstream API key never reaches the browser.

The upstream key is read from NEXTDNS_API_KEY (or upstream.api_key in the
config file).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.NewRunner(opts.logger).Run(opts.cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file (or set NEXTDASH_CONFIG)")
	flags.StringVar(&opts.host, "host", "", "Override bind host")
	flags.IntVar(&opts.port, "port", 0, "Override bind port")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newProfileCmd(opts))
	return cmd
}

// load reads the configuration, applies flag overrides and configures logging.
func (o *options) load() error {
	cfg, err := config.Load(config.ResolveConfigPath(o.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if o.host != "" {
		cfg.Server.Host = o.host
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if o.jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if o.debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	o.cfg = cfg
	o.logger = logging.Configure(logging.FromConfig(cfg.Logging))
	return nil
}
