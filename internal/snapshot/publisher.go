// Package snapshot publishes the glanceable summary a companion widget
// process polls: total expenses for the current month plus the display
// currency code, written to a shared JSON file. The file is replaced
// atomically so a reader never observes a torn write. Refresh cadence is
// the caller's concern.
package snapshot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/insights"
	"github.com/outlay-app/outlay/internal/model"
)

// Snapshot is the shared key-value slot consumed by the widget process.
type Snapshot struct {
	UpdatedAt              time.Time       `json:"updated_at"`
	Currency               string          `json:"currency"`
	TotalExpensesThisMonth decimal.Decimal `json:"total_expenses_this_month"`
}

// Publisher writes snapshots to a fixed path.
type Publisher struct {
	path string
}

// NewPublisher creates a publisher targeting the given file path.
func NewPublisher(path string) (*Publisher, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}
	return &Publisher{path: path}, nil
}

// Publish derives the current-month expense total from the entries and
// writes the snapshot. now selects which month is current.
func (p *Publisher) Publish(entries []model.Entry, currency string, now time.Time) (Snapshot, error) {
	snap := Snapshot{
		TotalExpensesThisMonth: insights.TotalSpentThisMonth(entries, now),
		Currency:               currency,
		UpdatedAt:              now,
	}

	if err := p.write(snap); err != nil {
		return Snapshot{}, err
	}

	slog.Debug("published widget snapshot",
		"path", p.path,
		"total", snap.TotalExpensesThisMonth,
		"currency", snap.Currency)
	return snap, nil
}

func (p *Publisher) write(snap Snapshot) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".widget-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	// The widget runs as a less-privileged reader.
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set snapshot permissions: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Read loads a previously published snapshot. This is the consumer side of
// the contract.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
