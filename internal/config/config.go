// Package config loads and validates service configuration from
// environment variables. Everything is read once at process start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backend selectors.
const (
	BackendSheets = "sheets"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Ruleset selectors. RulesetFull requires and checks material and dealer
// codes; RulesetSerial validates by serial number alone and only checks
// the codes when the caller supplies them.
const (
	RulesetFull   = "full"
	RulesetSerial = "serial"
)

// RowRange restricts validation to an inclusive range of sheet rows.
// Zero value means no restriction.
type RowRange struct {
	Start int
	End   int
}

// Enabled reports whether the range restriction is active.
func (r RowRange) Enabled() bool {
	return r.Start > 0 && r.End > 0
}

// Contains reports whether the given sheet row falls inside the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.Start && row <= r.End
}

// Config holds all runtime configuration for the validation service.
type Config struct {
	Port string

	// Token service
	JWTSecret    string
	AuthUsername string
	AuthPassword string

	// Row store
	StoreBackend           string
	GoogleSheetCredentials string
	SpreadsheetID          string
	WorksheetName          string
	MongoURI               string
	MongoDatabase          string

	// Business rules
	Ruleset      string
	RowRangeLock RowRange
}

// Load reads configuration from the environment and validates required
// fields. A missing store credential is a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnvDefault("PORT", "8080"),
		WorksheetName: getEnvDefault("WORKSHEET_NAME", "Sheet1"),
		MongoURI:      getEnvDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvDefault("MONGODB_DATABASE", "serial_validation"),
	}

	var err error
	if cfg.JWTSecret, err = getEnvRequired("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AuthUsername, err = getEnvRequired("AUTH_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.AuthPassword, err = getEnvRequired("AUTH_PASSWORD"); err != nil {
		return nil, err
	}

	cfg.StoreBackend = getEnvDefault("STORE_BACKEND", BackendSheets)
	switch cfg.StoreBackend {
	case BackendSheets:
		if cfg.GoogleSheetCredentials, err = getEnvRequired("GOOGLE_SHEET_CREDENTIALS"); err != nil {
			return nil, err
		}
		if cfg.SpreadsheetID, err = getEnvRequired("SPREADSHEET_ID"); err != nil {
			return nil, err
		}
	case BackendMongo, BackendMemory:
		// no credential needed beyond the defaults above
	default:
		return nil, fmt.Errorf("STORE_BACKEND: unknown value %q, expected %s, %s or %s",
			cfg.StoreBackend, BackendSheets, BackendMongo, BackendMemory)
	}

	cfg.Ruleset = getEnvDefault("VALIDATION_RULESET", RulesetFull)
	if cfg.Ruleset != RulesetFull && cfg.Ruleset != RulesetSerial {
		return nil, fmt.Errorf("VALIDATION_RULESET: unknown value %q, expected %s or %s",
			cfg.Ruleset, RulesetFull, RulesetSerial)
	}

	if cfg.RowRangeLock, err = parseRowRange(os.Getenv("ROW_RANGE_LOCK")); err != nil {
		return nil, fmt.Errorf("ROW_RANGE_LOCK: %w", err)
	}

	return cfg, nil
}

// parseRowRange parses an inclusive "start-end" row range, e.g. "2-50".
func parseRowRange(raw string) (RowRange, error) {
	if raw == "" {
		return RowRange{}, nil
	}
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return RowRange{}, fmt.Errorf("expected start-end, got %q", raw)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return RowRange{}, fmt.Errorf("invalid start row %q", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return RowRange{}, fmt.Errorf("invalid end row %q", parts[1])
	}
	if start < 1 || end < start {
		return RowRange{}, fmt.Errorf("invalid range %d-%d", start, end)
	}
	return RowRange{Start: start, End: end}, nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s: required environment variable is not set", key)
	}
	return v, nil
}
