package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/outlay-app/outlay/internal/common"
	"github.com/outlay-app/outlay/internal/config"
	"github.com/outlay-app/outlay/internal/model"
	"github.com/outlay-app/outlay/internal/service"
	"github.com/outlay-app/outlay/internal/storage"
)

// initStorage opens the configured database, applies migrations, and seeds
// the default categories on a fresh store.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to migrate database", err)
	}

	if err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to seed default categories", err)
	}

	return store, nil
}

// resolveCategory finds a category by display name.
func resolveCategory(ctx context.Context, store service.Storage, name string) (*model.Category, error) {
	cat, err := store.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("unknown category %q (use 'outlay categories list'): %w", name, err)
	}
	return cat, nil
}

// parseEntryDate accepts a date with or without a time of day.
func parseEntryDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want 2006-01-02, 2006-01-02 15:04, or RFC3339)", value)
}

// parseMonth parses a YYYY-MM flag into its year and month.
func parseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM)", value)
	}
	return t.Year(), t.Month(), nil
}

// parseHexColor converts "#RRGGBB" to a normalized ColorRGB.
func parseHexColor(value string) (model.ColorRGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return model.ColorRGB{}, fmt.Errorf("invalid color %q (want #RRGGBB)", value)
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		var b int
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02x", &b); err != nil {
			return model.ColorRGB{}, fmt.Errorf("invalid color %q (want #RRGGBB)", value)
		}
		channels[i] = float64(b) / 255
	}
	return model.ColorRGB{Red: channels[0], Green: channels[1], Blue: channels[2]}, nil
}
