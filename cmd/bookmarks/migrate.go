package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/bookmarks/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loggerService, log := bootstrap()
		defer loggerService.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}
