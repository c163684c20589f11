package entities

import "errors"

// ValidationStatus is the string-typed status code carried in every
// ValidateSrNo response body.
type ValidationStatus string

const (
	StatusSuccess          ValidationStatus = "0"
	StatusNotFound         ValidationStatus = "-1"
	StatusMaterialMismatch ValidationStatus = "-2"
	StatusAlreadyValidated ValidationStatus = "-3"
	StatusDealerMismatch   ValidationStatus = "-6"
	StatusLocked           ValidationStatus = "-7"
	StatusMissingFields    ValidationStatus = "-99"
	StatusInvalidToken     ValidationStatus = "-403"
	StatusInternalError    ValidationStatus = "-500"
)

// Canonical response messages per status. The internal-error message is
// built at the handler boundary since it embeds the error detail.
const (
	MessageSuccess          = "Valid Serial Number"
	MessageNotFound         = "Invalid Serial Number"
	MessageMaterialMismatch = "Mismatch in model and serial number"
	MessageAlreadyValidated = "Serial Number Already Validated"
	MessageDealerMismatch   = "Serial number is not billed to this Dealer"
	MessageLocked           = "Serial number is outside the permitted validation range"
	MessageMissingFields    = "Missing required fields"
	MessageInvalidToken     = "Missing or invalid bearer token"
)

// ErrAlreadyValidated is returned by row stores that perform the
// false->true transition conditionally and find the record consumed.
var ErrAlreadyValidated = errors.New("record already validated")

// TimestampLayout is the format the validation timestamp is written in.
const TimestampLayout = "2006-01-02 15:04:05"

// Record represents one tracked serial number in the backing row store.
// Row is the record's position in the snapshot it was fetched from,
// numbered the sheet way: header in row 1, data from row 2. Backends
// that address records by key still report it for the row-range lock.
type Record struct {
	Row          int    `json:"row" bson:"row,omitempty"`
	SerialNumber string `json:"serial_number" bson:"serial_number"`
	MaterialCode string `json:"material_code" bson:"material_code"`
	DealerCode   string `json:"dealer_code" bson:"dealer_code"`
	Validated    bool   `json:"is_validated" bson:"is_validated"`
	ValidatedAt  string `json:"validated_at,omitempty" bson:"validated_at,omitempty"`
}

func (r *Record) Validate() error {
	if r.SerialNumber == "" {
		return errors.New("serial number is required")
	}
	return nil
}
