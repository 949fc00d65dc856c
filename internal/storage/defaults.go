package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/outlay-app/outlay/internal/model"
)

type defaultCategory struct {
	name  string
	icon  string
	color model.ColorRGB
}

// The starter set a fresh database is seeded with.
var defaultCategories = []defaultCategory{
	{"Groceries", "cart.fill", rgb255(102, 192, 204)},
	{"Dining Out", "fork.knife", rgb255(85, 205, 198)},
	{"Transportation", "car.fill", rgb255(90, 175, 220)},
	{"Entertainment", "film.fill", rgb255(130, 120, 220)},
	{"Utilities", "bolt.fill", rgb255(255, 165, 79)},
	{"Health & Fitness", "heart.fill", rgb255(255, 92, 118)},
	{"Salary", "dollarsign.circle.fill", rgb255(110, 180, 145)},
	{"Other Income", "banknote.fill", rgb255(150, 210, 85)},
	{"Rent", "house.fill", rgb255(240, 100, 75)},
	{"Debt Repayment", "creditcard.fill", rgb255(230, 130, 60)},
}

func rgb255(red, green, blue float64) model.ColorRGB {
	return model.ColorRGB{Red: red / 255, Green: green / 255, Blue: blue / 255}
}

// SeedDefaultCategories inserts the default category set when no categories
// exist yet. A database that already has categories is left untouched, so
// the call is safe to repeat on every startup.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, dc := range defaultCategories {
		cat := model.NewCategory(dc.name, dc.color, dc.icon, now)
		if err := s.CreateCategory(ctx, cat); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", dc.name, err)
		}
	}

	slog.Info("seeded default categories", "count", len(defaultCategories))
	return nil
}
