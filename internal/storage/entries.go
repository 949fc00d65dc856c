package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/common"
	"github.com/outlay-app/outlay/internal/model"
	"github.com/outlay-app/outlay/internal/service"
)

const entryColumns = `id, name, date, type, amount, notes, category_id`

// CreateEntry inserts a new entry.
func (s *SQLiteStorage) CreateEntry(ctx context.Context, entry *model.Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	query := `
		INSERT INTO entries (id, name, date, type, amount, notes, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.Name, entry.Date, string(entry.Type),
		entry.Amount.String(), entry.Notes, nullableID(entry.CategoryID))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: entry %s", common.ErrDuplicateEntry, entry.ID)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	slog.Debug("created entry", "id", entry.ID, "type", entry.Type, "amount", entry.Amount)
	return nil
}

// GetEntries returns all entries ordered by date ascending.
func (s *SQLiteStorage) GetEntries(ctx context.Context) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM entries ORDER BY date, id`, entryColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetEntriesFiltered returns entries matching the filter, ordered by date
// ascending. Zero-value filter fields are ignored.
func (s *SQLiteStorage) GetEntriesFiltered(ctx context.Context, filter service.EntryFilter) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, fmt.Errorf("%w: type %q", ErrInvalidEntry, filter.Type)
		}
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := fmt.Sprintf(`SELECT %s FROM entries`, entryColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetEntryByID returns a single entry, or common.ErrNotFound.
func (s *SQLiteStorage) GetEntryByID(ctx context.Context, id string) (*model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM entries WHERE id = ?`, entryColumns)

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

// GetEntriesByCategoryID returns all entries tagged with the category,
// ordered by date ascending.
func (s *SQLiteStorage) GetEntriesByCategoryID(ctx context.Context, categoryID string) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM entries WHERE category_id = ? ORDER BY date, id`, entryColumns)

	rows, err := s.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// UpdateEntry replaces all mutable fields of an existing entry.
func (s *SQLiteStorage) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	query := `
		UPDATE entries
		SET name = ?, date = ?, type = ?, amount = ?, notes = ?, category_id = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		entry.Name, entry.Date, string(entry.Type), entry.Amount.String(),
		entry.Notes, nullableID(entry.CategoryID), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: entry %s", common.ErrNotFound, entry.ID)
	}

	slog.Debug("updated entry", "id", entry.ID)
	return nil
}

// DeleteEntry removes a single entry.
func (s *SQLiteStorage) DeleteEntry(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
	}

	slog.Debug("deleted entry", "id", id)
	return nil
}

// CountEntries returns the total number of entries.
func (s *SQLiteStorage) CountEntries(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.Entry, error) {
	var (
		entry      model.Entry
		entryType  string
		amount     string
		date       time.Time
		categoryID sql.NullString
	)
	if err := row.Scan(&entry.ID, &entry.Name, &date, &entryType, &amount, &entry.Notes, &categoryID); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid stored amount %q", common.ErrDatabaseCorrupted, amount)
	}

	entry.Date = date
	entry.Type = model.EntryType(entryType)
	entry.Amount = parsed
	if categoryID.Valid {
		entry.CategoryID = categoryID.String
	}
	return &entry, nil
}

func scanEntries(rows *sql.Rows) ([]model.Entry, error) {
	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	slog.Debug("retrieved entries", "count", len(entries))
	return entries, nil
}

// nullableID converts an optional reference to its SQL representation.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
