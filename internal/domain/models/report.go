package models

import "time"

// DashboardSummary holds the aggregated metrics shown on the dashboard.
type DashboardSummary struct {
	TotalValue         float64            `json:"totalValue" bson:"total_value"`
	TotalItems         int                `json:"totalItems" bson:"total_items"`
	LowStockCount      int                `json:"lowStockCount" bson:"low_stock_count"`
	UniqueCategories   int                `json:"uniqueCategories" bson:"unique_categories"`
	QuantityByCategory map[string]int     `json:"quantityByCategory" bson:"quantity_by_category"`
	ValueByCategory    map[string]float64 `json:"valueByCategory" bson:"value_by_category"`
}

// DailySummary is the scheduled snapshot of the dashboard metrics persisted
// for historical reporting.
type DailySummary struct {
	Date        time.Time        `bson:"date" json:"date"`
	RecordCount int              `bson:"record_count" json:"recordCount"`
	Summary     DashboardSummary `bson:"summary" json:"summary"`
	CreatedAt   time.Time        `bson:"created_at" json:"createdAt"`
}
