// Package testutil provides test utilities for the outlay project.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/model"
	"github.com/outlay-app/outlay/internal/service"
	"github.com/outlay-app/outlay/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SetupTestDBWithDefaults creates an in-memory test database seeded with
// the default category set.
func SetupTestDBWithDefaults(t *testing.T) *TestDB {
	t.Helper()

	db := SetupTestDB(t)
	if err := db.Storage.SeedDefaultCategories(context.Background()); err != nil {
		t.Fatalf("failed to seed default categories: %v", err)
	}
	return db
}

// MustCreateCategory creates a category or fails the test.
func (db *TestDB) MustCreateCategory(name, icon string, color model.ColorRGB) *model.Category {
	db.t.Helper()

	cat := model.NewCategory(name, color, icon, time.Now())
	if err := db.Storage.CreateCategory(context.Background(), cat); err != nil {
		db.t.Fatalf("failed to create category %q: %v", name, err)
	}
	return cat
}

// MustCreateEntry creates an entry or fails the test.
func (db *TestDB) MustCreateEntry(name string, entryType model.EntryType, amount string, date time.Time, categoryID string) *model.Entry {
	db.t.Helper()

	entry := model.NewEntry(date)
	entry.Name = name
	entry.Type = entryType
	entry.Amount = decimal.RequireFromString(amount)
	entry.CategoryID = categoryID

	if err := db.Storage.CreateEntry(context.Background(), entry); err != nil {
		db.t.Fatalf("failed to create entry %q: %v", name, err)
	}
	return entry
}

// MustGetCategoryByName returns the named category or fails the test.
func (db *TestDB) MustGetCategoryByName(name string) *model.Category {
	db.t.Helper()

	cat, err := db.Storage.GetCategoryByName(context.Background(), name)
	if err != nil {
		db.t.Fatalf("failed to get category %q: %v", name, err)
	}
	return cat
}
