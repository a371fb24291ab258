//go:build integration

// Package db contains integration tests for the catalog store.
// They start a throwaway PostgreSQL container and run against real SQL.
package db

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client

// TestMain sets up and tears down the PostgreSQL container for all tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("skillmorph_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Failed to get connection string: %v", err)
	}

	testDB, err = NewClient(ctx, Config{URL: connStr}, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := seedCatalog(ctx); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	code := m.Run()

	testDB.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

// seedCatalog loads a small fixed catalog. Counts and prices here are load
// bearing for the query tests.
func seedCatalog(ctx context.Context) error {
	_, err := testDB.pool.Exec(ctx, `
		INSERT INTO users (user_id, username) VALUES
			(1, 'ada'),
			(2, 'grace');

		INSERT INTO courses (title, category, price, duration, description, instructor_id) VALUES
			('React Fundamentals',        'Development', 19.99, 5400,  'Components, props and state',           1),
			('Advanced React Patterns',   'Development', 29.99, 14400, 'Hooks, context and performance',        1),
			('Go for Backend Engineers',  'Development', 49.99, 21600, 'HTTP services and concurrency',         2),
			('SQL Crash Course',          'Development', 9.99,  2700,  'Joins, aggregates and indexes',         2),
			('Open Web Workshop',         'Development', NULL,  3600,  'Community sessions on react hooks',     1),
			('Kubernetes in Practice',    'Development', 59.99, 18000, 'Deployments, services and operators',   2),
			('TypeScript Essentials',     'Development', 24.99, 7200,  'Types, generics and tooling',           1),
			('Figma Basics',              'Design',      15.00, 3600,  'Frames, components and auto layout',    2),
			('UX Research Methods',       'Design',      25.50, 5400,  'Interviews, surveys and usability',     2),
			('Startup Finance',           'Business',    39.99, 10800, 'Runway, pricing and unit economics',    1),
			('Unpublished Draft',         'Development', 5.00,  0,     'No published videos yet',               1);
	`)
	return err
}

func TestPing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := testDB.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}
