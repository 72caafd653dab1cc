package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"nexdata/internal/config"
	"nexdata/internal/domain/models"
)

const (
	inventoryRange = "Inventory!A:H"
	summaryRange   = "Summary!A:G"
)

// Repository defines the export operations supported by the Google Sheets adapter.
type Repository interface {
	AppendRecord(ctx context.Context, record models.DataRecord) error
	AppendSummary(ctx context.Context, summary models.DailySummary) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRecord appends one inventory record as a row on the Inventory sheet.
func (r *GoogleSheetRepository) AppendRecord(ctx context.Context, record models.DataRecord) error {
	values := []interface{}{
		record.ID,
		record.ProductName,
		string(record.Category),
		record.Quantity,
		record.Price,
		record.DateAdded,
		string(record.Status),
		record.Notes,
	}
	return r.writeRow(ctx, inventoryRange, values)
}

// AppendSummary appends the daily summary metrics as a row on the Summary sheet.
func (r *GoogleSheetRepository) AppendSummary(ctx context.Context, summary models.DailySummary) error {
	values := []interface{}{
		summary.Date.Format(models.DateLayout),
		summary.RecordCount,
		summary.Summary.TotalValue,
		summary.Summary.TotalItems,
		summary.Summary.LowStockCount,
		summary.Summary.UniqueCategories,
		summary.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	return r.writeRow(ctx, summaryRange, values)
}

// writeRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) writeRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
