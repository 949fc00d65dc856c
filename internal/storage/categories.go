package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/outlay-app/outlay/internal/common"
	"github.com/outlay-app/outlay/internal/model"
)

const categoryColumns = `id, name, color_red, color_green, color_blue, icon, created_at`

// GetCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY name, id`, categoryColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by its ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = ?`, categoryColumns)

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// GetCategoryByName returns a category by its display name, or
// common.ErrNotFound. Names are unique at the schema level.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE name = ?`, categoryColumns)

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %q", common.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// CreateCategory inserts a new category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, name, color_red, color_green, color_blue, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name,
		category.Color.Red, category.Color.Green, category.Color.Blue,
		category.Icon, category.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, category.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "name", category.Name, "id", category.ID)
	return nil
}

// UpdateCategory replaces the mutable fields of an existing category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = ?, color_red = ?, color_green = ?, color_blue = ?, icon = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		category.Name,
		category.Color.Red, category.Color.Green, category.Color.Blue,
		category.Icon, category.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, category.Name)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, category.ID)
	}

	slog.Info("updated category", "name", category.Name, "id", category.ID)
	return nil
}

// DeleteCategory removes a category and cascades to every entry referencing
// it, in a single transaction. It returns the number of entries deleted
// with the category.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(id, "id"); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var entryCount int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE category_id = ?`, id).Scan(&entryCount)
	if err != nil {
		return 0, fmt.Errorf("failed to count category entries: %w", err)
	}

	// The ON DELETE CASCADE constraint removes the entries with the row.
	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit category deletion: %w", err)
	}

	slog.Info("deleted category", "id", id, "cascaded_entries", entryCount)
	return entryCount, nil
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var cat model.Category
	if err := row.Scan(
		&cat.ID, &cat.Name,
		&cat.Color.Red, &cat.Color.Green, &cat.Color.Blue,
		&cat.Icon, &cat.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cat, nil
}
