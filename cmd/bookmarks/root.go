package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/logger"
)

// rootCmd runs the HTTP server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Bookmarks HTTP service",
	Long: `Bookmarks serves CRUD over a single bookmark resource.

Configuration is read from BOOKMARKS_* environment variables (and a .env
file in the working directory), e.g. BOOKMARKS_SERVER__PORT=8000.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().Bool("migrate", false, "Apply pending schema migrations before serving")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads the configuration and builds the application logger.
// Invalid configuration is fatal.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := logger.NewLogger(config.DefaultObservabilityConfig())
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log
}
