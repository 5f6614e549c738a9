package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jroosing/nextdash/internal/server"
)

const profileTimeout = 30 * time.Second

// newProfileCmd fetches one profile with the configured credential, which
// doubles as a check that the upstream key works.
func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <id>",
		Short: "Fetch a profile from the upstream API and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return fmt.Errorf("profile id is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), profileTimeout)
			defer cancel()

			client := server.NewClient(opts.cfg, opts.logger)
			profile, err := client.GetProfile(ctx, id)
			if err != nil {
				return fmt.Errorf("fetch profile %s: %w", id, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		},
	}
}
