package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 day format used for DateAdded values.
const DateLayout = "2006-01-02"

// LowStockThreshold marks records considered low stock, regardless of their
// stored status label.
const LowStockThreshold = 10

// Category enumerates the supported product categories.
type Category string

const (
	CategoryElectronics    Category = "Electronics"
	CategoryFurniture      Category = "Furniture"
	CategoryClothing       Category = "Clothing"
	CategoryOfficeSupplies Category = "Office Supplies"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFurniture,
		CategoryClothing,
		CategoryOfficeSupplies,
		CategoryOther,
	}
}

// Valid reports whether the category is one of the enumerated values.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryOfficeSupplies, CategoryOther:
		return true
	}
	return false
}

// CoerceCategory maps free-form category text onto the closed set, falling
// back to Other for unrecognized or empty input.
func CoerceCategory(raw string) Category {
	candidate := Category(strings.TrimSpace(raw))
	if candidate.Valid() {
		return candidate
	}

	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c
		}
	}

	return CategoryOther
}

// Status enumerates the supported stock statuses.
type Status string

const (
	StatusInStock      Status = "In Stock"
	StatusLowStock     Status = "Low Stock"
	StatusOutOfStock   Status = "Out of Stock"
	StatusDiscontinued Status = "Discontinued"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued}
}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
		return true
	}
	return false
}

// CoerceStatus maps free-form status text onto the closed set, falling back
// to In Stock for unrecognized or empty input.
func CoerceStatus(raw string) Status {
	candidate := Status(strings.TrimSpace(raw))
	if candidate.Valid() {
		return candidate
	}

	for _, s := range Statuses() {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s
		}
	}

	return StatusInStock
}

// DataRecord is a single inventory entry. Records are immutable once
// created; edits are modeled as delete plus re-add.
type DataRecord struct {
	ID          string   `json:"id" bson:"id"`
	ProductName string   `json:"productName" bson:"product_name"`
	Category    Category `json:"category" bson:"category"`
	Quantity    int      `json:"quantity" bson:"quantity"`
	Price       float64  `json:"price" bson:"price"`
	DateAdded   string   `json:"dateAdded" bson:"date_added"`
	Status      Status   `json:"status" bson:"status"`
	Notes       string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Validate checks the record invariants: non-empty id and name, closed enum
// values, non-negative quantity and price, parseable date.
func (r DataRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record id must not be empty")
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("productName must not be empty")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", r.Quantity)
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative, got %.2f", r.Price)
	}
	if _, err := time.Parse(DateLayout, r.DateAdded); err != nil {
		return fmt.Errorf("dateAdded must be a %s date: %w", DateLayout, err)
	}
	return nil
}

// Normalize coerces the enum fields in place. Applied at every boundary that
// accepts records from outside the process (API, extraction, persistence).
func (r *DataRecord) Normalize() {
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Category = CoerceCategory(string(r.Category))
	r.Status = CoerceStatus(string(r.Status))
}

// Value returns the stock value of the record.
func (r DataRecord) Value() float64 {
	return r.Price * float64(r.Quantity)
}

// LowStock reports whether the record quantity sits below the alert
// threshold. Intentionally independent of the Status label.
func (r DataRecord) LowStock() bool {
	return r.Quantity < LowStockThreshold
}

// SeedRecords returns the fixed starter dataset used when the persistence
// slot is empty or unreadable.
func SeedRecords() []DataRecord {
	return []DataRecord{
		{ID: "1", ProductName: "Ergonomic Chair", Category: CategoryFurniture, Quantity: 45, Price: 250.00, DateAdded: "2023-10-01", Status: StatusInStock, Notes: "Black mesh"},
		{ID: "2", ProductName: "Wireless Mouse", Category: CategoryElectronics, Quantity: 8, Price: 29.99, DateAdded: "2023-10-02", Status: StatusLowStock, Notes: "Logitech"},
		{ID: "3", ProductName: "Standing Desk", Category: CategoryFurniture, Quantity: 12, Price: 450.00, DateAdded: "2023-10-03", Status: StatusInStock},
		{ID: "4", ProductName: "Monitor 27\"", Category: CategoryElectronics, Quantity: 0, Price: 300.00, DateAdded: "2023-10-05", Status: StatusOutOfStock},
		{ID: "5", ProductName: "Printer Paper (Box)", Category: CategoryOfficeSupplies, Quantity: 100, Price: 45.00, DateAdded: "2023-10-06", Status: StatusInStock},
	}
}
