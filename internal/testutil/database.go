// Package testutil provides test helpers for the finance-pro project:
// in-memory databases and fluent builders for application state.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/storage"
)

// TestDB is an in-memory SQLite database wrapped in a state gateway.
type TestDB struct {
	Gateway *storage.Gateway
	Backend *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. When state is not
// nil it is stored before the database is returned. Cleanup is automatic.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.NewStateBuilder(t, now).
//		WithExpense(120, "Продукты", "Евроопт", 1).
//		BuildPtr())
func SetupTestDB(t *testing.T, state *model.AppState) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{State: state})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, storage.Backend) error
	State          *model.AppState
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	backend, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := backend.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	gateway := storage.NewGateway(backend, DiscardLogger())

	if opts.State != nil {
		if err := gateway.SaveState(ctx, *opts.State); err != nil {
			t.Fatalf("failed to seed state: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, backend); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = gateway.Close()
	})

	return &TestDB{
		Gateway: gateway,
		Backend: backend,
		t:       t,
	}
}

// MustLoadState returns the stored state or fails the test.
func (db *TestDB) MustLoadState() model.AppState {
	db.t.Helper()
	state, ok := db.Gateway.LoadState(context.Background())
	if !ok {
		db.t.Fatalf("no state stored")
	}
	return *state
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
