package repositories

import (
	"context"
	"time"

	"github.com/gudangkita/serial-validation/server/domain/entities"
)

// RowStore defines data access methods for serial-number records.
// The backing store is treated as a flat ledger: one bulk read per
// request, one targeted update for the validated transition.
type RowStore interface {
	// FetchAll returns a snapshot of every record in store order.
	FetchAll(ctx context.Context) ([]entities.Record, error)
	// MarkValidated flips the record's validated flag and writes the
	// validation timestamp. Implementations address the record either by
	// its snapshot Row position or by its serial number; stores that can
	// update conditionally return entities.ErrAlreadyValidated when the
	// record was consumed between snapshot and write.
	MarkValidated(ctx context.Context, record *entities.Record, at time.Time) error
}
