package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func testCategory(t *testing.T, store *SQLiteStorage, name string) *model.Category {
	t.Helper()

	cat := model.NewCategory(name, model.ColorRGB{Red: 0.5, Green: 0.5, Blue: 0.5}, "tag.fill", time.Now())
	if err := store.CreateCategory(context.Background(), cat); err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return cat
}

func testEntry(name string, entryType model.EntryType, amount string, date time.Time, categoryID string) *model.Entry {
	entry := model.NewEntry(date)
	entry.Name = name
	entry.Type = entryType
	entry.Amount = decimal.RequireFromString(amount)
	entry.CategoryID = categoryID
	return entry
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := newTestStorage(t)

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
}

func TestMigrate_NilContext(t *testing.T) {
	store := newTestStorage(t)

	//nolint:staticcheck // Deliberately testing nil context handling
	if err := store.Migrate(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Migrate(nil) error = %v, want ErrNilContext", err)
	}
}
