package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// NewService builds an authorized Sheets API client from raw service
// account JSON (the GOOGLE_SHEET_CREDENTIALS value) and verifies the
// spreadsheet is reachable before returning.
func NewService(ctx context.Context, credentialsJSON, spreadsheetID string, logger *zap.Logger) (*sheetsapi.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	// Verify access up front so a bad credential fails at startup, not
	// on the first validation request.
	if _, err := svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	logger.Info("Successfully connected to Google Sheets",
		zap.String("spreadsheet_id", spreadsheetID))

	return svc, nil
}
