package slot

import (
	"context"
	"errors"

	"nexdata/internal/domain/models"
)

// ErrEmpty signals that the persistence slot holds no data yet. Callers are
// expected to fall back to the seed dataset.
var ErrEmpty = errors.New("persistence slot is empty")

// Repository persists the entire record collection under a single named
// slot, mirroring the original single key-value entry semantics: every save
// rewrites the whole collection.
type Repository interface {
	Load(ctx context.Context) ([]models.DataRecord, error)
	Save(ctx context.Context, records []models.DataRecord) error
}
