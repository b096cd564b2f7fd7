// Package sheets appends daily report snapshots to a Google Sheet so the
// owner can keep a spreadsheet ledger alongside the application store.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/abiwaumi/tablewater/internal/config"
	"github.com/abiwaumi/tablewater/internal/domain/models"
)

const reportRange = "DailyReports!A:G"

// Exporter defines the export operation the scheduler depends on.
type Exporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyReport appends one row per report to the export range.
func (e *GoogleSheetExporter) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{{
		report.Date,
		report.BagsProduced,
		report.BagsSold,
		report.Revenue,
		report.Expenses,
		report.NetProfit,
		report.LowStockCount,
	}}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, reportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row for %s: %w", report.Date, err)
	}

	e.logger.Debug("daily report exported to sheet", zap.String("date", report.Date))
	return nil
}
