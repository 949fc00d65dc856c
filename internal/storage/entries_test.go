package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outlay-app/outlay/internal/common"
	"github.com/outlay-app/outlay/internal/model"
	"github.com/outlay-app/outlay/internal/service"
)

func TestCreateAndGetEntry(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat := testCategory(t, store, "Groceries")
	date := time.Date(2024, 9, 20, 14, 30, 0, 0, time.UTC)
	entry := testEntry("Weekly shop", model.EntryTypeExpense, "54.20", date, cat.ID)
	entry.Notes = "farmers market"

	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}

	got, err := store.GetEntryByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetEntryByID() failed: %v", err)
	}

	if got.Name != "Weekly shop" {
		t.Errorf("name = %q, want %q", got.Name, "Weekly shop")
	}
	if got.Type != model.EntryTypeExpense {
		t.Errorf("type = %q, want expense", got.Type)
	}
	if !got.Amount.Equal(decimal.RequireFromString("54.20")) {
		t.Errorf("amount = %s, want 54.20", got.Amount)
	}
	if got.Notes != "farmers market" {
		t.Errorf("notes = %q", got.Notes)
	}
	if got.CategoryID != cat.ID {
		t.Errorf("categoryID = %q, want %q", got.CategoryID, cat.ID)
	}
	if !got.Date.Equal(date) {
		t.Errorf("date = %v, want %v", got.Date, date)
	}
}

func TestCreateEntry_WithoutCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	entry := testEntry("Cash found", model.EntryTypeIncome, "20", time.Now(), "")
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}

	got, err := store.GetEntryByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetEntryByID() failed: %v", err)
	}
	if got.CategoryID != "" {
		t.Errorf("categoryID = %q, want empty", got.CategoryID)
	}
}

func TestCreateEntry_DuplicateID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	entry := testEntry("First", model.EntryTypeExpense, "5", time.Now(), "")
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}

	dup := testEntry("Second", model.EntryTypeExpense, "6", time.Now(), "")
	dup.ID = entry.ID
	if err := store.CreateEntry(ctx, dup); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("duplicate CreateEntry() error = %v, want ErrDuplicateEntry", err)
	}
}

func TestCreateEntry_RejectsInvalid(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	negative := testEntry("Bad", model.EntryTypeExpense, "5", time.Now(), "")
	negative.Amount = decimal.NewFromInt(-5)
	if err := store.CreateEntry(ctx, negative); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("negative amount error = %v, want ErrInvalidEntry", err)
	}

	if err := store.CreateEntry(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("nil entry error = %v, want ErrNilParameter", err)
	}
}

func TestGetEntries_OrderedByDate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	later := testEntry("later", model.EntryTypeExpense, "2", time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC), "")
	earlier := testEntry("earlier", model.EntryTypeExpense, "1", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), "")
	for _, e := range []*model.Entry{later, earlier} {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry() failed: %v", err)
		}
	}

	entries, err := store.GetEntries(ctx)
	if err != nil {
		t.Fatalf("GetEntries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "earlier" || entries[1].Name != "later" {
		t.Errorf("entries out of date order: %q, %q", entries[0].Name, entries[1].Name)
	}
}

func TestGetEntriesFiltered(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat := testCategory(t, store, "Transport")
	sept := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	aug := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)

	entries := []*model.Entry{
		testEntry("bus", model.EntryTypeExpense, "3", sept, cat.ID),
		testEntry("train", model.EntryTypeExpense, "15", aug, cat.ID),
		testEntry("salary", model.EntryTypeIncome, "3000", sept, ""),
	}
	for _, e := range entries {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry() failed: %v", err)
		}
	}

	septStart := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	got, err := store.GetEntriesFiltered(ctx, service.EntryFilter{StartDate: &septStart})
	if err != nil {
		t.Fatalf("GetEntriesFiltered() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("date filter returned %d entries, want 2", len(got))
	}

	got, err = store.GetEntriesFiltered(ctx, service.EntryFilter{CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("GetEntriesFiltered() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("category filter returned %d entries, want 2", len(got))
	}

	got, err = store.GetEntriesFiltered(ctx, service.EntryFilter{Type: model.EntryTypeIncome})
	if err != nil {
		t.Fatalf("GetEntriesFiltered() failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "salary" {
		t.Errorf("type filter returned wrong entries: %v", got)
	}

	if _, err := store.GetEntriesFiltered(ctx, service.EntryFilter{Type: "refund"}); err == nil {
		t.Error("invalid type filter should error")
	}
}

func TestUpdateEntry(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat := testCategory(t, store, "Dining Out")
	entry := testEntry("Lunch", model.EntryTypeExpense, "12", time.Now(), "")
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}

	entry.Name = "Team lunch"
	entry.Amount = decimal.RequireFromString("48.90")
	entry.CategoryID = cat.ID
	if err := store.UpdateEntry(ctx, entry); err != nil {
		t.Fatalf("UpdateEntry() failed: %v", err)
	}

	got, err := store.GetEntryByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetEntryByID() failed: %v", err)
	}
	if got.Name != "Team lunch" || !got.Amount.Equal(decimal.RequireFromString("48.90")) || got.CategoryID != cat.ID {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	store := newTestStorage(t)

	ghost := testEntry("Ghost", model.EntryTypeExpense, "1", time.Now(), "")
	if err := store.UpdateEntry(context.Background(), ghost); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("UpdateEntry() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	entry := testEntry("Doomed", model.EntryTypeExpense, "9", time.Now(), "")
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry() failed: %v", err)
	}

	if err := store.DeleteEntry(ctx, entry.ID); err != nil {
		t.Fatalf("DeleteEntry() failed: %v", err)
	}
	if _, err := store.GetEntryByID(ctx, entry.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetEntryByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteEntry(ctx, entry.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second DeleteEntry() error = %v, want ErrNotFound", err)
	}
}

func TestCountEntries(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	count, err := store.CountEntries(ctx)
	if err != nil {
		t.Fatalf("CountEntries() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("empty store count = %d, want 0", count)
	}

	for i := 0; i < 3; i++ {
		e := testEntry("e", model.EntryTypeExpense, "1", time.Now(), "")
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry() failed: %v", err)
		}
	}

	count, err = store.CountEntries(ctx)
	if err != nil {
		t.Fatalf("CountEntries() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestAmountRoundTrip_ExactDecimal(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Values that lose precision as float64 must survive storage intact.
	amounts := []string{"0.1", "0.01", "1234567.89", "19.99"}
	for _, a := range amounts {
		entry := testEntry("precise", model.EntryTypeExpense, a, time.Now(), "")
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry(%s) failed: %v", a, err)
		}

		got, err := store.GetEntryByID(ctx, entry.ID)
		if err != nil {
			t.Fatalf("GetEntryByID() failed: %v", err)
		}
		if got.Amount.String() != a {
			t.Errorf("amount round trip = %s, want %s", got.Amount, a)
		}
	}
}
