package reporting

import (
	"time"

	"go.uber.org/zap"

	"nexdata/internal/domain/models"
)

// Service derives dashboard metrics from the record collection.
type Service struct {
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Summarize computes the dashboard metrics in a single pass over the
// collection. Pure function of its input; no caching.
func (s *Service) Summarize(records []models.DataRecord) models.DashboardSummary {
	summary := models.DashboardSummary{
		QuantityByCategory: make(map[string]int),
		ValueByCategory:    make(map[string]float64),
	}

	for _, r := range records {
		value := r.Value()

		summary.TotalValue += value
		summary.TotalItems += r.Quantity
		if r.LowStock() {
			summary.LowStockCount++
		}

		category := string(r.Category)
		summary.QuantityByCategory[category] += r.Quantity
		summary.ValueByCategory[category] += value
	}

	summary.UniqueCategories = len(summary.QuantityByCategory)
	return summary
}

// BuildDailySummary packages the current metrics as a dated snapshot for
// the scheduled history writer.
func (s *Service) BuildDailySummary(records []models.DataRecord, now time.Time) models.DailySummary {
	return models.DailySummary{
		Date:        now.Truncate(24 * time.Hour),
		RecordCount: len(records),
		Summary:     s.Summarize(records),
		CreatedAt:   now,
	}
}
