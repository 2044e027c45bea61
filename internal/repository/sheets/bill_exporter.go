package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

// Bills are appended to this tab; the sheet must exist in the spreadsheet.
const billExportRange = "Bills!A:D"

// Exporter defines the export operations supported by the Google Sheets adapter.
type Exporter interface {
	AppendBill(ctx context.Context, bill models.Bill) error
	ExportedRowCount(ctx context.Context) (int, error)
}

// GoogleSheetExporter implements the Exporter interface using the official
// Google Sheets API, so the shop owner can share the ledger as a spreadsheet.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// AppendBill appends one bill as a spreadsheet row.
func (e *GoogleSheetExporter) AppendBill(ctx context.Context, bill models.Bill) error {
	row := []interface{}{bill.ID, bill.ProductName, bill.Quantity, bill.TotalPrice.String()}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, billExportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append bill %d into range %s: %w", bill.ID, billExportRange, err)
	}

	e.logger.Debug("bill exported to sheet", zap.Int64("bill_id", bill.ID))
	return nil
}

// ExportedRowCount returns how many bill rows the sheet currently holds.
func (e *GoogleSheetExporter) ExportedRowCount(ctx context.Context) (int, error) {
	resp, err := e.service.Spreadsheets.Values.Get(e.spreadsheetID, billExportRange).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read range %s: %w", billExportRange, err)
	}

	return len(resp.Values), nil
}
