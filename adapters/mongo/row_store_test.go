package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/gudangkita/serial-validation/server/domain/entities"
)

// TestRowStore_Integration exercises the Mongo row store against a real
// instance (skipped if MONGODB_URI is not set).
func TestRowStore_Integration(t *testing.T) {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		t.Skip("Skipping MongoDB integration test - MONGODB_URI not set")
	}

	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	client, err := NewClient(mongoURI, "serial_validation_test", logger)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Close(ctx)
	defer client.Database.Drop(ctx)

	collection := client.Database.Collection("records")
	seed := []interface{}{
		bson.M{"serial_number": "SN1", "material_code": "M1", "dealer_code": "D1", "is_validated": false},
		bson.M{"serial_number": "SN2", "material_code": "M2", "dealer_code": "D2", "is_validated": true, "validated_at": "2024-01-15 10:30:00"},
	}
	if _, err := collection.InsertMany(ctx, seed); err != nil {
		t.Fatalf("Failed to seed records: %v", err)
	}

	store := NewRowStore(client.Database)

	t.Run("FetchAll", func(t *testing.T) {
		records, err := store.FetchAll(ctx)
		if err != nil {
			t.Fatalf("FetchAll() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].SerialNumber != "SN1" || records[1].SerialNumber != "SN2" {
			t.Errorf("records out of insertion order: %s, %s",
				records[0].SerialNumber, records[1].SerialNumber)
		}
		if records[0].Validated {
			t.Error("SN1 unexpectedly validated")
		}
		if !records[1].Validated {
			t.Error("SN2 not validated")
		}
	})

	t.Run("MarkValidated", func(t *testing.T) {
		at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		rec := entities.Record{SerialNumber: "SN1"}

		if err := store.MarkValidated(ctx, &rec, at); err != nil {
			t.Fatalf("MarkValidated() error = %v", err)
		}

		var doc entities.Record
		if err := collection.FindOne(ctx, bson.M{"serial_number": "SN1"}).Decode(&doc); err != nil {
			t.Fatalf("Failed to read back record: %v", err)
		}
		if !doc.Validated {
			t.Error("record not flagged validated")
		}
		if doc.ValidatedAt != "2024-06-01 12:00:00" {
			t.Errorf("validated_at = %q", doc.ValidatedAt)
		}
	})

	t.Run("MarkValidatedIsConditional", func(t *testing.T) {
		err := store.MarkValidated(ctx, &entities.Record{SerialNumber: "SN2"}, time.Now())
		if !errors.Is(err, entities.ErrAlreadyValidated) {
			t.Fatalf("MarkValidated() error = %v, want ErrAlreadyValidated", err)
		}
	})
}
