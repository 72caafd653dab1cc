package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{"exact match", "Electronics", CategoryElectronics},
		{"case insensitive", "office supplies", CategoryOfficeSupplies},
		{"padded", "  Furniture  ", CategoryFurniture},
		{"unknown", "Groceries", CategoryOther},
		{"empty", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceCategory(tt.raw))
		})
	}
}

func TestCoerceStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{"exact match", "Low Stock", StatusLowStock},
		{"case insensitive", "out of stock", StatusOutOfStock},
		{"unknown", "Backordered", StatusInStock},
		{"empty", "", StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceStatus(tt.raw))
		})
	}
}

func TestDataRecordValidate(t *testing.T) {
	valid := DataRecord{
		ID:          "r1",
		ProductName: "Desk Lamp",
		Category:    CategoryFurniture,
		Quantity:    4,
		Price:       19.99,
		DateAdded:   "2024-03-01",
		Status:      StatusLowStock,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*DataRecord)
	}{
		{"empty id", func(r *DataRecord) { r.ID = " " }},
		{"empty name", func(r *DataRecord) { r.ProductName = "" }},
		{"bad category", func(r *DataRecord) { r.Category = "Gadgets" }},
		{"bad status", func(r *DataRecord) { r.Status = "Backordered" }},
		{"negative quantity", func(r *DataRecord) { r.Quantity = -1 }},
		{"negative price", func(r *DataRecord) { r.Price = -0.01 }},
		{"bad date", func(r *DataRecord) { r.DateAdded = "03/01/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestDataRecordNormalize(t *testing.T) {
	r := DataRecord{ProductName: "  Cable  ", Category: "electronics", Status: "whatever"}
	r.Normalize()

	assert.Equal(t, "Cable", r.ProductName)
	assert.Equal(t, CategoryElectronics, r.Category)
	assert.Equal(t, StatusInStock, r.Status)
}

func TestDataRecordLowStock(t *testing.T) {
	// Threshold is quantity-based only; the status label does not matter.
	r := DataRecord{Quantity: 9, Status: StatusInStock}
	assert.True(t, r.LowStock())

	r = DataRecord{Quantity: 10, Status: StatusLowStock}
	assert.False(t, r.LowStock())
}

func TestSeedRecordsAreValid(t *testing.T) {
	seed := SeedRecords()
	require.Len(t, seed, 5)

	seen := make(map[string]bool)
	for _, r := range seed {
		require.NoError(t, r.Validate(), "seed record %s", r.ID)
		assert.False(t, seen[r.ID], "duplicate seed id %s", r.ID)
		seen[r.ID] = true
	}
}
