package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gudangkita/serial-validation/server/domain/entities"
	"github.com/gudangkita/serial-validation/server/domain/repositories"
	"github.com/gudangkita/serial-validation/server/internal/config"
)

// validationZone is the fixed offset the validation timestamp is written
// in, independent of the host timezone.
var validationZone = time.FixedZone("UTC+05:30", 5*3600+30*60)

// ValidateRequest is the payload of one validation call. AccessKey is
// accepted for wire compatibility but never checked.
type ValidateRequest struct {
	SerialNumber string
	MaterialCode string
	DealerCode   string
	AccessKey    string
}

// ValidateResult is the outcome of one validation call, always expressed
// as a status code plus message, never as an error.
type ValidateResult struct {
	Status  entities.ValidationStatus
	Message string
}

// ValidationService applies the business rules for serial-number
// validation against an injected row store. Rule order is a contract:
// missing fields, not found, row-range lock, material mismatch, dealer
// mismatch, already validated. A row failing several checks reports the
// first one.
type ValidationService struct {
	store    repositories.RowStore
	ruleset  string
	rowRange config.RowRange
	locks    *serialLocks
	logger   *zap.Logger
	now      func() time.Time
}

// NewValidationService creates a validation service using the given row
// store and ruleset (config.RulesetFull or config.RulesetSerial).
func NewValidationService(store repositories.RowStore, ruleset string, rowRange config.RowRange, logger *zap.Logger) *ValidationService {
	return &ValidationService{
		store:    store,
		ruleset:  ruleset,
		rowRange: rowRange,
		locks:    newSerialLocks(),
		logger:   logger,
		now:      func() time.Time { return time.Now().In(validationZone) },
	}
}

// ValidateSerial runs the ordered rule checks and, for a valid
// unconsumed record, performs the one-time validated transition.
func (s *ValidationService) ValidateSerial(ctx context.Context, req ValidateRequest) ValidateResult {
	if s.missingRequiredFields(req) {
		return ValidateResult{Status: entities.StatusMissingFields, Message: entities.MessageMissingFields}
	}

	// Serialize the fetch-check-mark sequence per serial number so two
	// concurrent requests cannot both see the record unvalidated.
	unlock := s.locks.acquire(req.SerialNumber)
	defer unlock()

	records, err := s.store.FetchAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch records",
			zap.String("serial_number", req.SerialNumber),
			zap.Error(err))
		return internalError(err)
	}

	record, found := findBySerial(records, req.SerialNumber)
	if !found {
		s.logger.Info("Serial number not found",
			zap.String("serial_number", req.SerialNumber))
		return ValidateResult{Status: entities.StatusNotFound, Message: entities.MessageNotFound}
	}

	if s.rowRange.Enabled() && !s.rowRange.Contains(record.Row) {
		return ValidateResult{Status: entities.StatusLocked, Message: entities.MessageLocked}
	}

	if req.MaterialCode != "" && record.MaterialCode != req.MaterialCode {
		return ValidateResult{Status: entities.StatusMaterialMismatch, Message: entities.MessageMaterialMismatch}
	}

	if req.DealerCode != "" && record.DealerCode != req.DealerCode {
		return ValidateResult{Status: entities.StatusDealerMismatch, Message: entities.MessageDealerMismatch}
	}

	if record.Validated {
		return ValidateResult{Status: entities.StatusAlreadyValidated, Message: entities.MessageAlreadyValidated}
	}

	if err := s.store.MarkValidated(ctx, &record, s.now()); err != nil {
		if errors.Is(err, entities.ErrAlreadyValidated) {
			return ValidateResult{Status: entities.StatusAlreadyValidated, Message: entities.MessageAlreadyValidated}
		}
		s.logger.Error("Failed to mark record validated",
			zap.String("serial_number", req.SerialNumber),
			zap.Error(err))
		return internalError(err)
	}

	s.logger.Info("Serial number validated",
		zap.String("serial_number", req.SerialNumber),
		zap.Int("row", record.Row))

	return ValidateResult{Status: entities.StatusSuccess, Message: entities.MessageSuccess}
}

// missingRequiredFields checks the payload preconditions for the active
// ruleset. This runs before any store access.
func (s *ValidationService) missingRequiredFields(req ValidateRequest) bool {
	if req.SerialNumber == "" {
		return true
	}
	if s.ruleset == config.RulesetFull {
		return req.MaterialCode == "" || req.DealerCode == ""
	}
	return false
}

// findBySerial returns the first record matching the serial number,
// case-sensitively. The ledger is assumed to hold at most one row per
// serial; duplicates silently resolve to the first.
func findBySerial(records []entities.Record, serial string) (entities.Record, bool) {
	for _, r := range records {
		if r.SerialNumber == serial {
			return r, true
		}
	}
	return entities.Record{}, false
}

func internalError(err error) ValidateResult {
	return ValidateResult{
		Status:  entities.StatusInternalError,
		Message: "Internal Error: " + err.Error(),
	}
}

// serialLocks hands out one mutex per serial number. Entries are never
// released; the ledger holds at most a few thousand serials.
type serialLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSerialLocks() *serialLocks {
	return &serialLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *serialLocks) acquire(serial string) func() {
	l.mu.Lock()
	m, ok := l.locks[serial]
	if !ok {
		m = &sync.Mutex{}
		l.locks[serial] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
