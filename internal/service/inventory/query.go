package inventory

import (
	"sort"
	"strings"

	"nexdata/internal/domain/models"
)

// SortKey identifies a sortable record field.
type SortKey string

const (
	SortByProductName SortKey = "productName"
	SortByCategory    SortKey = "category"
	SortByQuantity    SortKey = "quantity"
	SortByPrice       SortKey = "price"
	SortByDateAdded   SortKey = "dateAdded"
	SortByStatus      SortKey = "status"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec pairs a sort key with a direction.
type SortSpec struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the spec resulting from selecting a key: selecting the
// current ascending key flips to descending, anything else resets to
// ascending on the chosen key.
func (s *SortSpec) Toggle(key SortKey) SortSpec {
	if s != nil && s.Key == key && s.Direction == Ascending {
		return SortSpec{Key: key, Direction: Descending}
	}
	return SortSpec{Key: key, Direction: Ascending}
}

// Query describes one list request: a search term plus an optional sort.
type Query struct {
	Search string
	Sort   *SortSpec
}

// Apply filters the records by the search term, then stably sorts them when
// a sort spec is present. It returns the result and its length.
func Apply(records []models.DataRecord, q Query) ([]models.DataRecord, int) {
	filtered := filter(records, q.Search)

	if q.Sort != nil {
		sortRecords(filtered, *q.Sort)
	}

	return filtered, len(filtered)
}

// filter retains records whose product name, category, or notes contain the
// search term, case-insensitively. An empty term matches everything; absent
// notes simply fail the notes clause.
func filter(records []models.DataRecord, search string) []models.DataRecord {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.DataRecord, 0, len(records))
	for _, r := range records {
		if term == "" ||
			strings.Contains(strings.ToLower(r.ProductName), term) ||
			strings.Contains(strings.ToLower(string(r.Category)), term) ||
			(r.Notes != "" && strings.Contains(strings.ToLower(r.Notes), term)) {
			out = append(out, r)
		}
	}
	return out
}

func sortRecords(records []models.DataRecord, spec SortSpec) {
	sort.SliceStable(records, func(i, j int) bool {
		less, ok := compare(records[i], records[j], spec.Key)
		if !ok {
			// Unknown sort key: everything compares equal.
			return false
		}
		if spec.Direction == Descending {
			return !less && !equal(records[i], records[j], spec.Key)
		}
		return less
	})
}

// compare reports whether a sorts before b on the given key. The second
// return value is false when the key is not sortable.
func compare(a, b models.DataRecord, key SortKey) (less bool, ok bool) {
	switch key {
	case SortByProductName:
		return a.ProductName < b.ProductName, true
	case SortByCategory:
		return a.Category < b.Category, true
	case SortByQuantity:
		return a.Quantity < b.Quantity, true
	case SortByPrice:
		return a.Price < b.Price, true
	case SortByDateAdded:
		// ISO dates sort chronologically under lexicographic order.
		return a.DateAdded < b.DateAdded, true
	case SortByStatus:
		return a.Status < b.Status, true
	}
	return false, false
}

func equal(a, b models.DataRecord, key SortKey) bool {
	aLess, _ := compare(a, b, key)
	bLess, _ := compare(b, a, key)
	return !aLess && !bLess
}

// ParseSortKey validates a raw sort parameter, returning false for keys that
// are not sortable fields.
func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case SortByProductName, SortByCategory, SortByQuantity, SortByPrice, SortByDateAdded, SortByStatus:
		return SortKey(raw), true
	}
	return "", false
}

// ParseDirection maps a raw direction parameter onto Ascending unless it is
// explicitly descending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(raw, string(Descending)) {
		return Descending
	}
	return Ascending
}
