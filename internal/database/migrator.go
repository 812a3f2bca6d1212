package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/deppfellow/bookmarks/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

//go:embed sqlite_migrations/*.sql
var sqliteMigrations embed.FS

// Migrate brings the configured database up to the latest schema.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	if cfg.Database.Driver == config.DriverSQLite {
		db, err := OpenSQLite(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		return MigrateSQLite(ctx, logger, db)
	}

	return MigratePostgres(ctx, logger, cfg.Database.PostgresDSN())
}

// MigrateDatabase migrates through an already opened Database, which keeps
// a ":memory:" SQLite schema on the connection the server will use.
func MigrateDatabase(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database) error {
	if db.SQL != nil {
		return MigrateSQLite(ctx, logger, db.SQL)
	}
	return MigratePostgres(ctx, logger, cfg.Database.PostgresDSN())
}

// MigratePostgres applies the embedded tern migrations over a single
// connection and records the version in schema_version.
func MigratePostgres(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// MigrateSQLite applies every embedded SQLite migration not yet listed in
// schema_migrations, each in its own transaction.
func MigrateSQLite(ctx context.Context, logger *zerolog.Logger, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema migrations table: %w", err)
	}

	entries, err := sqliteMigrations.ReadDir("sqlite_migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")

		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = ?)`, version,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check if migration has been applied: %w", err)
		}
		if exists {
			continue
		}

		content, err := sqliteMigrations.ReadFile("sqlite_migrations/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration file: %w", err)
		}

		if err := applySQLiteMigration(ctx, db, version, string(content)); err != nil {
			return err
		}
		applied++

		logger.Info().Str("version", version).Msg("applied sqlite migration")
	}

	if applied == 0 {
		logger.Info().Msgf("database schema up to date, version %d", len(files))
	}
	return nil
}

func applySQLiteMigration(ctx context.Context, db *sql.DB, version, content string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES (?)`, version,
	); err != nil {
		return fmt.Errorf("failed to mark migration as applied: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
