// Package service defines the interfaces for the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/outlay-app/outlay/internal/model"
)

// EntryFilter defines filtering options for entry queries.
type EntryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
	Type       model.EntryType
}

// Storage defines the contract for the entry store. Implementations own the
// Category to Entry cascade: deleting a category removes every entry
// referencing it in a single transactional step.
type Storage interface {
	// Entry operations
	CreateEntry(ctx context.Context, entry *model.Entry) error
	GetEntries(ctx context.Context) ([]model.Entry, error)
	GetEntriesFiltered(ctx context.Context, filter EntryFilter) ([]model.Entry, error)
	GetEntryByID(ctx context.Context, id string) (*model.Entry, error)
	GetEntriesByCategoryID(ctx context.Context, categoryID string) ([]model.Entry, error)
	UpdateEntry(ctx context.Context, entry *model.Entry) error
	DeleteEntry(ctx context.Context, id string) error
	CountEntries(ctx context.Context) (int, error)

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	// DeleteCategory removes the category and cascades to its entries,
	// returning how many entries were deleted with it.
	DeleteCategory(ctx context.Context, id string) (int64, error)
	SeedDefaultCategories(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
