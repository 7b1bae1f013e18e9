package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/apptstats/internal/db"
	"github.com/gyeh/apptstats/internal/logging"
	"github.com/gyeh/apptstats/internal/model"
)

const (
	testPort     = 15433
	testDB       = "apptstatstest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("APPTSTATS_PG_TESTS") == "" {
		fmt.Fprintln(os.Stderr, "SKIP: set APPTSTATS_PG_TESTS=1 to run embedded postgres tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops the stats schema and reapplies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS stats CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text", "warn")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	// second application must be a no-op
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations (again): %v", err)
	}
	var recorded int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM stats.schema_migrations").Scan(&recorded); err != nil {
		pool.Close()
		t.Fatalf("ledger: %v", err)
	}
	if recorded != 2 {
		pool.Close()
		t.Fatalf("recorded migrations = %d, want 2", recorded)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func publication(runID uuid.UUID) db.Publication {
	return db.Publication{
		RunID:        runID,
		SourceName:   "hosp-outp-act.xlsx",
		SourceSHA256: "abc123",
		Datasets: []db.DatasetTables{
			{
				Name: "outcomes",
				Long: model.LongTable{
					GroupColumn: "Year",
					HasPct:      true,
					Order:       []string{"Missed", "Attended"},
					Records: []model.LongRecord{
						{Group: "2017", Category: "Attended", Count: 90, Pct: 90},
						{Group: "2017", Category: "Missed", Count: 10, Pct: 10},
					},
				},
			},
			{
				Name: "age_sex",
				Long: model.LongTable{
					GroupColumn: "Age",
					HasPct:      true,
					Records:     []model.LongRecord{{Group: "0-4", Category: "Male", Count: 4, Pct: 100}},
				},
				AgeSex: []model.AgeSexRecord{{AgeBand: "0-4", Sex: "Male", Count: 4, Pct: 100}},
			},
		},
	}
}

func TestPublish(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text", "warn")

	runID := uuid.New()
	n, err := db.Publish(ctx, pool, log, publication(runID))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 4 {
		t.Errorf("rows published: got %d, want 4", n)
	}

	var rank int32
	var pct float64
	err = pool.QueryRow(ctx,
		"SELECT category_rank, pct FROM stats.long_records WHERE run_id = $1 AND category = 'Attended'",
		runID).Scan(&rank, &pct)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rank != 1 || pct != 90 {
		t.Errorf("Attended: got rank=%d pct=%v, want rank=1 pct=90", rank, pct)
	}

	var unordered int32
	err = pool.QueryRow(ctx,
		"SELECT category_rank FROM stats.long_records WHERE run_id = $1 AND dataset = 'age_sex'",
		runID).Scan(&unordered)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if unordered != -1 {
		t.Errorf("unordered rank: got %d, want -1", unordered)
	}
}

func TestPublish_ReplacesSameSource(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text", "warn")

	first := uuid.New()
	if _, err := db.Publish(ctx, pool, log, publication(first)); err != nil {
		t.Fatalf("Publish first: %v", err)
	}
	second := uuid.New()
	if _, err := db.Publish(ctx, pool, log, publication(second)); err != nil {
		t.Fatalf("Publish second: %v", err)
	}

	var runs int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM stats.runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 1 {
		t.Errorf("runs: got %d, want 1", runs)
	}

	if n, err := db.CountPublished(ctx, pool, first); err != nil || n != 0 {
		t.Errorf("first run rows: got %d (%v), want 0", n, err)
	}
	if n, err := db.CountPublished(ctx, pool, second); err != nil || n != 4 {
		t.Errorf("second run rows: got %d (%v), want 4", n, err)
	}
}

func TestPublish_RollsBackOnFailure(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text", "warn")

	pub := publication(uuid.New())
	// duplicate primary key in the long records
	pub.Datasets[0].Long.Records = append(pub.Datasets[0].Long.Records, pub.Datasets[0].Long.Records[0])

	if _, err := db.Publish(ctx, pool, log, pub); err == nil {
		t.Fatal("expected publish to fail on duplicate records")
	}

	var runs int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM stats.runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 0 {
		t.Errorf("runs after failed publish: got %d, want 0", runs)
	}
}
