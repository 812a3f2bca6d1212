// Package database opens the connection pool the bookmark gateway runs on.
//
// It handles:
//   - a pgx connection pool (pgxpool) for the postgres driver
//   - a database/sql handle over mattn/go-sqlite3 for the sqlite driver
//   - query tracing: New Relic (nrpgx5), pgx tracelog in the local env and
//     a slow query logger
//   - schema bootstrap for both drivers (see migrator.go)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	_ "github.com/mattn/go-sqlite3"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/bookmarks/internal/config"
	loggerConfig "github.com/deppfellow/bookmarks/internal/logger"
)

// Database holds the handle of whichever driver is configured. Exactly one
// of Pool and SQL is set.
type Database struct {
	Driver string
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	log    *zerolog.Logger
}

// multiTracer fans pgx query tracing out to several tracers; pgx only has a
// single Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer warns about statements slower than threshold.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := time.Since(start.at)
	if elapsed < t.threshold {
		return
	}

	t.log.Warn().
		Str("sql", start.sql).
		Dur("duration", elapsed).
		Str("command_tag", data.CommandTag.String()).
		Msg("slow query")
}

// DatabasePingTimeout is the number of seconds startup waits for the first
// ping before giving up.
const DatabasePingTimeout = 10

// New opens the configured driver and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return newSQLite(cfg, logger)
	default:
		return newPostgres(cfg, logger, loggerService)
	}
}

func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	applyPoolSettings(pgxPoolConfig, cfg.Database)

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{threshold: threshold, log: logger})
	}

	// SQL statement logging is noisy, so it is limited to the local env.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Driver: config.DriverPostgres,
		Pool:   pool,
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", database.Driver).Msg("connected to the database")

	return database, nil
}

func applyPoolSettings(pc *pgxpool.Config, dc config.DatabaseConfig) {
	if dc.MaxOpenConns > 0 {
		pc.MaxConns = int32(dc.MaxOpenConns)
	}
	if dc.MaxIdleConns > 0 {
		pc.MinConns = int32(dc.MaxIdleConns)
		if pc.MinConns > pc.MaxConns {
			pc.MinConns = pc.MaxConns
		}
	}
	if dc.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = time.Duration(dc.ConnMaxLifetime) * time.Second
	}
	if dc.ConnMaxIdleTime > 0 {
		pc.MaxConnIdleTime = time.Duration(dc.ConnMaxIdleTime) * time.Second
	}
}

func newSQLite(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	db, err := OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Path != ":memory:" {
		if cfg.Database.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		}
		if cfg.Database.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		}
		if cfg.Database.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
		}
		if cfg.Database.ConnMaxIdleTime > 0 {
			db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("driver", config.DriverSQLite).
		Str("path", cfg.Database.Path).
		Msg("connected to the database")

	return WrapSQLite(db, logger), nil
}

// OpenSQLite opens a SQLite database file. Each connection to ":memory:"
// would see its own empty database, so in-memory handles are pinned to a
// single connection.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	return db, nil
}

// WrapSQLite adopts an already opened SQLite handle.
func WrapSQLite(db *sql.DB, logger *zerolog.Logger) *Database {
	return &Database{
		Driver: config.DriverSQLite,
		SQL:    db,
		log:    logger,
	}
}

// Ping checks that the database still answers.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.SQL.PingContext(ctx)
}

// Close releases the pool.
func (db *Database) Close() error {
	db.log.Info().Str("driver", db.Driver).Msg("closing database connection pool")

	if db.Pool != nil {
		db.Pool.Close()
		return nil
	}
	return db.SQL.Close()
}
