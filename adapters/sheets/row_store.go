package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/gudangkita/serial-validation/server/domain/entities"
	"github.com/gudangkita/serial-validation/server/domain/repositories"
)

// Worksheet layout: header in row 1, data from row 2. Columns A-E are
// serialNumber, materialCode, dealerCode, isValidated ("yes"/"no") and
// validatedAt.
const (
	headerRowOffset = 2
	dataRange       = "A2:E"

	colSerialNumber = 0
	colMaterialCode = 1
	colDealerCode   = 2
	colValidated    = 3
	colValidatedAt  = 4

	validatedYes = "yes"
)

// RowStore implements repositories.RowStore on a Google Sheets
// worksheet.
//
// MarkValidated addresses the row by the position captured at FetchAll
// time. A concurrent external insertion or deletion between snapshot and
// write shifts positions and can corrupt an unrelated row; the service
// serializes its own writers per serial number, but edits made directly
// in the sheet are not protected.
type RowStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	worksheet     string
	logger        *zap.Logger
}

// NewRowStore creates a RowStore reading and writing the given worksheet.
func NewRowStore(svc *sheetsapi.Service, spreadsheetID, worksheet string, logger *zap.Logger) repositories.RowStore {
	return &RowStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		logger:        logger,
	}
}

// FetchAll implements repositories.RowStore with one bulk values read.
func (s *RowStore) FetchAll(ctx context.Context) ([]entities.Record, error) {
	readRange := fmt.Sprintf("%s!%s", s.worksheet, dataRange)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", readRange, err)
	}

	records := make([]entities.Record, 0, len(resp.Values))
	for i, row := range resp.Values {
		records = append(records, recordFromRow(i+headerRowOffset, row))
	}
	return records, nil
}

// MarkValidated implements repositories.RowStore. The flag and the
// timestamp land in a single values update over D<row>:E<row>, so there
// is no window where one cell is written and the other is not.
func (s *RowStore) MarkValidated(ctx context.Context, record *entities.Record, at time.Time) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.Row < headerRowOffset {
		return fmt.Errorf("record %s has no row position", record.SerialNumber)
	}

	writeRange := fmt.Sprintf("%s!D%d:E%d", s.worksheet, record.Row, record.Row)
	body := &sheetsapi.ValueRange{
		Values: [][]interface{}{{validatedYes, at.Format(entities.TimestampLayout)}},
	}

	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to mark row %d validated: %w", record.Row, err)
	}

	s.logger.Info("Marked record validated",
		zap.String("serial_number", record.SerialNumber),
		zap.Int("row", record.Row))

	return nil
}

// recordFromRow maps one sheet row onto a Record. Short rows are padded
// with empty cells; the validated flag follows the original ledger's
// "yes"/"no" convention, case-insensitively.
func recordFromRow(row int, cells []interface{}) entities.Record {
	return entities.Record{
		Row:          row,
		SerialNumber: cellString(cells, colSerialNumber),
		MaterialCode: cellString(cells, colMaterialCode),
		DealerCode:   cellString(cells, colDealerCode),
		Validated:    strings.EqualFold(cellString(cells, colValidated), validatedYes),
		ValidatedAt:  cellString(cells, colValidatedAt),
	}
}

func cellString(cells []interface{}, idx int) string {
	if idx >= len(cells) || cells[idx] == nil {
		return ""
	}
	if s, ok := cells[idx].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(cells[idx]))
}
