package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"nexdata/internal/domain/models"
	"nexdata/internal/repository/slot"
)

// ErrNotFound signals that no record with the requested id exists.
var ErrNotFound = errors.New("record not found")

// Store owns the in-memory record collection and its persistence lifecycle.
// All mutations flow through Add and Delete, and each one synchronously
// rewrites the backing slot before it is committed in memory.
type Store struct {
	repo   slot.Repository
	logger *zap.Logger

	mu      sync.RWMutex
	records []models.DataRecord
}

// NewStore wires a new store instance over the given slot backend.
func NewStore(repo slot.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, logger: logger}
}

// Load reads the slot once at startup. An empty or unreadable slot falls
// back to the seed dataset; the unreadable case is logged and the corrupt
// payload is overwritten on the next mutation.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, slot.ErrEmpty):
		s.logger.Info("persistence slot empty, using seed dataset")
		records = models.SeedRecords()
	case err != nil:
		s.logger.Warn("persistence slot unreadable, falling back to seed dataset", zap.Error(err))
		records = models.SeedRecords()
	}

	for i := range records {
		records[i].Normalize()
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info("store loaded", zap.Int("records", len(records)))
	return nil
}

// Add validates the record and prepends it to the collection, newest first.
// The slot write happens before the in-memory commit so a persistence
// failure leaves the collection unchanged.
func (s *Store) Add(ctx context.Context, record models.DataRecord) error {
	record.Normalize()
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.ID == record.ID {
			return fmt.Errorf("duplicate record id %s", record.ID)
		}
	}

	next := make([]models.DataRecord, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}

	s.records = next
	s.logger.Info("record added", zap.String("id", record.ID), zap.String("product", record.ProductName))
	return nil
}

// Delete removes exactly the record with the given id, leaving the order of
// the remaining records untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]models.DataRecord, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}

	s.records = next
	s.logger.Info("record deleted", zap.String("id", id))
	return nil
}

// Records returns a copy of the full collection in insertion order.
func (s *Store) Records() []models.DataRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DataRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Count returns the collection size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List applies the query to a snapshot of the collection.
func (s *Store) List(q Query) ([]models.DataRecord, int) {
	return Apply(s.Records(), q)
}
