package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/deppfellow/bookmarks/internal/database"
	"github.com/deppfellow/bookmarks/internal/model"
)

// Integration tests against a real PostgreSQL started with testcontainers.
//
//   GO_TEST_INTEGRATION=1 go test ./internal/repository -run Integration -v -count=1

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "bookmarks"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/bookmarks?sslmode=disable", host, port.Port())

	logger := zerolog.Nop()
	require.NoError(t, database.MigratePostgres(ctx, &logger, dsn))
	// a second run finds the schema current
	require.NoError(t, database.MigratePostgres(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestIntegration_BookmarkRepository(t *testing.T) {
	pool := startPostgres(t)

	exerciseGateway(t, NewBookmarkRepository(pool))
}

func TestBuildUpdate_PostgresPlaceholders(t *testing.T) {
	t.Parallel()

	patch := model.BookmarkPatch{
		Title:       strPtr("t"),
		URL:         strPtr("u"),
		Rating:      intPtr(1),
		Description: strPtr("d"),
	}
	query, args := buildUpdate(patch, 3, func(n int) string { return fmt.Sprintf("$%d", n) })

	require.Equal(t,
		"UPDATE bookmarks_list SET title = $1, url = $2, rating = $3, description = $4 WHERE id = $5",
		query)
	require.Len(t, args, 5)
}
