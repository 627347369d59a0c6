package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/infrastructure/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	dbOnce      sync.Once
	dbPool      *pgxpool.Pool
	dbContainer testcontainers.Container
	dbErr       error
)

func TestMain(m *testing.M) {
	code := m.Run()

	if dbPool != nil {
		dbPool.Close()
	}
	if dbContainer != nil {
		_ = dbContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

// testPool starts one Postgres container for the package, migrated to the latest schema.
// Tests that need it are skipped under -short or when Docker is unavailable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	dbOnce.Do(func() {
		dbPool, dbContainer, dbErr = startPostgres()
	})
	require.NoError(t, dbErr)
	return dbPool
}

func startPostgres() (*pgxpool.Pool, testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "portfolio",
			"POSTGRES_PASSWORD": "portfolio",
			"POSTGRES_DB":       "portfolio",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(90 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, ctr, fmt.Errorf("container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, ctr, fmt.Errorf("container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://portfolio:portfolio@%s:%s/portfolio?sslmode=disable", host, port.Port())
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return nil, ctr, err
	}
	if err := postgres.Migrate(pool); err != nil {
		pool.Close()
		return nil, ctr, err
	}
	return pool, ctr, nil
}

func truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := pool.Exec(context.Background(), "TRUNCATE "+table)
		require.NoError(t, err)
	}
}
