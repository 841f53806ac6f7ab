//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap"
	"github.com/ilya-afanasev/avr-lab-reservation/cmd/bootstrap/components"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/db"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/dbtest"

	"github.com/avast/retry-go/v4"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = "5432/tcp"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
)

type endpoint struct {
	host string
	port nat.Port
}

func (e endpoint) adminDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, e.host, e.port.Port())
}

// environment is one isolated database plus an application wired against it.
type environment struct {
	pool   *pgxpool.Pool
	router *gin.Engine
	cfg    config.Config
}

func newEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)

	pg := postgresEndpoint(t)
	dbCfg := createDatabase(t, pg)

	pool, closePool, err := db.Connect(dbCfg)
	require.NoError(t, err, "failed to connect to the test database")
	t.Cleanup(closePool)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(t, db.Migrate(ctx, pool), "failed to apply migrations")

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	router := startApp(t, pool, cfg)

	slog.Info("e2e environment ready", "database", dbCfg.DBName, "postgres_port", pg.port.Port())
	return environment{pool: pool, router: router, cfg: cfg}
}

// createDatabase gives each test process its own database on the shared container.
func createDatabase(t *testing.T, pg endpoint) config.DBConfig {
	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, pg.adminDSN())
	require.NoError(t, err, "failed to open admin connection")
	defer admin.Close()

	// the server may still refuse connections right after the container reports ready
	err = retry.Do(
		func() error {
			_, execErr := admin.Exec(ctx, "CREATE DATABASE "+dbName)
			return execErr
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(3*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("retrying database creation", "attempt", n+1, "error", err)
		}),
	)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()

		conn, err := pgxpool.New(dropCtx, pg.adminDSN())
		if err != nil {
			slog.Warn("failed to connect for cleanup", "database", dbName, "error", err)
			return
		}
		defer conn.Close()

		if _, err := conn.Exec(dropCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err)
		}
	})

	return config.DBConfig{
		Host:     pg.host,
		Port:     pg.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// startApp builds the HTTP stack the way serve does, minus the database
// module and the listener.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(pool, cfg),
		bootstrap.ConfigSections,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.TokenModule,
		bootstrap.InventoryModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start fx app")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("failed to stop fx app", "error", err)
		}
	})

	require.NotNil(t, router, "fx app started without a router")
	return router
}

// postgresEndpoint starts the container once per test process.
func postgresEndpoint(t *testing.T) endpoint {
	pgOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{pgPort},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// durability is irrelevant for throwaway data
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
				return endpoint{host: host, port: port}.adminDSN()
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "avr-lab-e2e"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		var err error
		pgContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start PostgreSQL container")
	})
	require.NotNil(t, pgContainer, "PostgreSQL container is not running")

	ctx := context.Background()
	port, err := pgContainer.MappedPort(ctx, nat.Port(pgPort))
	require.NoError(t, err, "failed to read mapped port")
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err, "failed to read container host")

	return endpoint{host: host, port: port}
}

// SharedSuite gives every e2e suite its own database and router.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	env := newEnvironment(s.T())
	s.DB = env.pool
	s.Router = env.router
	s.Config = env.cfg
}

// every subtest starts from empty tables
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}
