package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gudangkita/serial-validation/server/domain/entities"
)

func TestMemoryRowStore_RowNumbering(t *testing.T) {
	store := NewMemoryRowStore()
	store.Seed(
		entities.Record{SerialNumber: "SN1"},
		entities.Record{SerialNumber: "SN2"},
	)

	records, err := store.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Data starts below the header row, mirroring the sheet layout.
	if records[0].Row != 2 || records[1].Row != 3 {
		t.Errorf("rows = %d, %d, want 2, 3", records[0].Row, records[1].Row)
	}
}

func TestMemoryRowStore_FetchAllReturnsCopies(t *testing.T) {
	store := NewMemoryRowStore()
	store.Seed(entities.Record{SerialNumber: "SN1", MaterialCode: "M1"})

	records, _ := store.FetchAll(context.Background())
	records[0].MaterialCode = "tampered"

	rec, _ := store.Get("SN1")
	if rec.MaterialCode != "M1" {
		t.Error("mutating a fetched snapshot changed the store")
	}
}

func TestMemoryRowStore_MarkValidated(t *testing.T) {
	store := NewMemoryRowStore()
	store.Seed(entities.Record{SerialNumber: "SN1"})

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := entities.Record{SerialNumber: "SN1"}

	if err := store.MarkValidated(context.Background(), &rec, at); err != nil {
		t.Fatalf("MarkValidated() error = %v", err)
	}

	stored, _ := store.Get("SN1")
	if !stored.Validated {
		t.Error("record not flagged validated")
	}
	if stored.ValidatedAt != "2024-06-01 12:00:00" {
		t.Errorf("ValidatedAt = %q", stored.ValidatedAt)
	}

	// Second transition is rejected, not repeated.
	err := store.MarkValidated(context.Background(), &rec, at.Add(time.Hour))
	if !errors.Is(err, entities.ErrAlreadyValidated) {
		t.Fatalf("second MarkValidated() error = %v, want ErrAlreadyValidated", err)
	}
	stored, _ = store.Get("SN1")
	if stored.ValidatedAt != "2024-06-01 12:00:00" {
		t.Errorf("timestamp rewritten on rejected transition: %q", stored.ValidatedAt)
	}
}

func TestMemoryRowStore_MarkValidatedUnknownSerial(t *testing.T) {
	store := NewMemoryRowStore()

	err := store.MarkValidated(context.Background(), &entities.Record{SerialNumber: "SN9"}, time.Now())
	if err == nil {
		t.Fatal("MarkValidated() succeeded for unknown serial")
	}
}
