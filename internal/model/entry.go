package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry records money leaving or entering.
type EntryType string

const (
	// EntryTypeExpense represents money spent.
	EntryTypeExpense EntryType = "expense"
	// EntryTypeIncome represents money received.
	EntryTypeIncome EntryType = "income"
)

// Valid reports whether the entry type is one of the known values.
func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeIncome
}

// Entry represents a single dated income or expense record.
// Amount is always non-negative; direction is carried by Type.
type Entry struct {
	Date       time.Time
	ID         string
	Name       string // Free-text label, may be empty
	Notes      string
	CategoryID string // Empty when the entry has no category
	Type       EntryType
	Amount     decimal.Decimal
}

// NewEntry creates an entry with a fresh ID, dated now.
func NewEntry(now time.Time) *Entry {
	return &Entry{
		ID:   uuid.NewString(),
		Date: now,
		Type: EntryTypeExpense,
	}
}

// Validate checks the entry invariants.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("entry date cannot be zero")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("invalid entry type: %q", e.Type)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("entry amount cannot be negative: %s", e.Amount)
	}
	return nil
}
