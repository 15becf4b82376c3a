//go:build integration

// Package testinfra starts disposable backing services for integration tests.
package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/JaimeStill/longevity/internal/migrations"
	"github.com/JaimeStill/longevity/pkg/database"
)

const (
	postgresImage = "postgres:17-alpine"
	postgresPort  = "5432/tcp"
)

// SkipIfNoDocker skips the test when the Docker daemon is unreachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("docker not available")
	}
}

// Postgres starts a migrated PostgreSQL container and returns a connection
// to it. The container is terminated when the test ends.
func Postgres(t *testing.T) *sql.DB {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{postgresPort},
			Env: map[string]string{
				"POSTGRES_USER":     "longevity",
				"POSTGRES_PASSWORD": "longevity",
				"POSTGRES_DB":       "longevity",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(postgresPort),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	cfg := database.Config{
		Host:     host,
		Port:     port.Int(),
		Name:     "longevity",
		User:     "longevity",
		Password: "longevity",
		SSLMode:  "disable",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("database config: %v", err)
	}

	if err := migrations.Up(cfg.URL("pgx5")); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := database.New(&cfg, Logger())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	conn := db.Connection()
	t.Cleanup(func() { conn.Close() })

	if err := db.Check(ctx); err != nil {
		t.Fatal(fmt.Errorf("ping: %w", err))
	}
	return conn
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
