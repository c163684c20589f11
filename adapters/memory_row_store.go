package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gudangkita/serial-validation/server/domain/entities"
)

// headerRowOffset mirrors the sheet layout: row 1 is the header, data
// starts at row 2. The memory store reports the same row numbering so
// the row-range lock behaves identically across backends.
const headerRowOffset = 2

// MemoryRowStore is an in-memory implementation of RowStore, used as the
// dev backend and as the test double for the validation service.
type MemoryRowStore struct {
	mu         sync.RWMutex
	records    []entities.Record
	fetchCalls int
}

// NewMemoryRowStore creates an empty in-memory row store.
func NewMemoryRowStore() *MemoryRowStore {
	return &MemoryRowStore{}
}

// Seed appends records in store order. Row positions are assigned from
// the insertion order, header offset included.
func (m *MemoryRowStore) Seed(records ...entities.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		r.Row = len(m.records) + headerRowOffset
		m.records = append(m.records, r)
	}
}

// FetchAll implements RowStore. It returns a copy of the ledger so
// callers cannot mutate stored records.
func (m *MemoryRowStore) FetchAll(ctx context.Context) ([]entities.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetchCalls++
	out := make([]entities.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// MarkValidated implements RowStore. The update is conditional on the
// record still being unvalidated, matching the Mongo backend's semantics.
func (m *MemoryRowStore) MarkValidated(ctx context.Context, record *entities.Record, at time.Time) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].SerialNumber != record.SerialNumber {
			continue
		}
		if m.records[i].Validated {
			return entities.ErrAlreadyValidated
		}
		m.records[i].Validated = true
		m.records[i].ValidatedAt = at.Format(entities.TimestampLayout)
		return nil
	}
	return fmt.Errorf("record %s not found", record.SerialNumber)
}

// Get returns a copy of the record with the given serial number, for
// test assertions.
func (m *MemoryRowStore) Get(serialNumber string) (entities.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.SerialNumber == serialNumber {
			return r, true
		}
	}
	return entities.Record{}, false
}

// FetchCalls reports how many snapshots have been taken.
func (m *MemoryRowStore) FetchCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetchCalls
}
