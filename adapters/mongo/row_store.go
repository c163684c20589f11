package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gudangkita/serial-validation/server/domain/entities"
	"github.com/gudangkita/serial-validation/server/domain/repositories"
)

// RowStore implements repositories.RowStore on a MongoDB collection.
// Unlike the sheet backend it addresses records by serial number, and
// the validated transition is a conditional update: the filter requires
// is_validated to still be false, so two racing writers cannot both
// consume the same record.
type RowStore struct {
	collection *mongo.Collection
}

// NewRowStore creates a RowStore over the "records" collection.
func NewRowStore(db *mongo.Database) repositories.RowStore {
	return &RowStore{
		collection: db.Collection("records"),
	}
}

// FetchAll implements repositories.RowStore
func (r *RowStore) FetchAll(ctx context.Context) ([]entities.Record, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entities.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	// Mirror the sheet's row numbering (header in row 1, data from row 2)
	// so the row-range lock behaves the same on every backend.
	for i := range records {
		records[i].Row = i + 2
	}
	return records, nil
}

// MarkValidated implements repositories.RowStore
func (r *RowStore) MarkValidated(ctx context.Context, record *entities.Record, at time.Time) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}

	filter := bson.M{
		"serial_number": record.SerialNumber,
		"is_validated":  false,
	}
	update := bson.M{
		"$set": bson.M{
			"is_validated": true,
			"validated_at": at.Format(entities.TimestampLayout),
		},
	}

	err := r.collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the record vanished or someone validated it after
			// our snapshot; both read as the transition already done.
			return entities.ErrAlreadyValidated
		}
		return fmt.Errorf("failed to mark record %s validated: %w", record.SerialNumber, err)
	}

	return nil
}
