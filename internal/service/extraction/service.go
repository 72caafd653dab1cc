package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexdata/internal/domain/models"
	"nexdata/internal/service/inventory"
	"nexdata/pkg/clients/gemini"
)

var (
	// ErrNotConfigured signals a missing extraction credential. This is a
	// configuration problem, not a runtime fault.
	ErrNotConfigured = errors.New("extraction service not configured")

	// ErrBusy rejects a second extraction while one is still in flight.
	ErrBusy = errors.New("an extraction is already in progress")
)

const (
	fallbackProductName = "Unknown Product"
	importedNotes       = "Imported via AI"
)

// Service orchestrates AI extraction: it sends free-form text to the model,
// completes the partial items it returns, and stores them as records.
type Service struct {
	client gemini.Client
	store  *inventory.Store
	logger *zap.Logger

	inFlight atomic.Bool

	// Injection points for tests.
	now   func() time.Time
	newID func() string
}

// NewService wires a new extraction service. A nil client means no API key
// was configured; every Extract call then fails with ErrNotConfigured.
func NewService(client gemini.Client, store *inventory.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Configured reports whether an extraction client is available.
func (s *Service) Configured() bool {
	return s.client != nil
}

// Extract parses the text through the model and adds one record per
// extracted item, in extraction order. An empty extraction is a valid
// "nothing found" result; a malformed model response is an error.
// Only one extraction may run at a time.
func (s *Service) Extract(ctx context.Context, text string) ([]models.DataRecord, error) {
	if s.client == nil {
		s.logger.Error("extraction requested but no api key is configured")
		return nil, ErrNotConfigured
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.inFlight.Store(false)

	items, err := s.client.ExtractRecords(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract records: %w", err)
	}
	if len(items) == 0 {
		s.logger.Info("extraction found no items")
		return nil, nil
	}

	created := make([]models.DataRecord, 0, len(items))
	for _, item := range items {
		record := s.complete(item)
		if err := s.store.Add(ctx, record); err != nil {
			return created, fmt.Errorf("store extracted record %s: %w", record.ProductName, err)
		}
		created = append(created, record)
	}

	s.logger.Info("extraction completed", zap.Int("records", len(created)))
	return created, nil
}

// complete fills in everything the model left out so the result is a fully
// valid record.
func (s *Service) complete(item gemini.ExtractedItem) models.DataRecord {
	record := models.DataRecord{
		ID:          s.newID(),
		ProductName: strings.TrimSpace(item.ProductName),
		Category:    models.CoerceCategory(item.Category),
		Quantity:    int(item.Quantity),
		Price:       item.Price,
		DateAdded:   s.now().Format(models.DateLayout),
		Status:      models.CoerceStatus(item.Status),
		Notes:       strings.TrimSpace(item.Notes),
	}

	if record.ProductName == "" {
		record.ProductName = fallbackProductName
	}
	if record.Quantity < 0 {
		record.Quantity = 0
	}
	if record.Price < 0 {
		record.Price = 0
	}
	if record.Notes == "" {
		record.Notes = importedNotes
	}
	if supplied := strings.TrimSpace(item.DateAdded); supplied != "" {
		if _, err := time.Parse(models.DateLayout, supplied); err == nil {
			record.DateAdded = supplied
		}
	}

	return record
}
