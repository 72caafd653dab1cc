package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"nexdata/internal/domain/models"
)

// FileRepository is the default slot backend: one JSON file holding the
// serialized collection.
type FileRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileRepository builds a file-backed slot at the given path, creating
// parent directories as needed.
func NewFileRepository(path string, logger *zap.Logger) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("slot file path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create slot directory %s: %w", dir, err)
		}
	}

	return &FileRepository{path: path, logger: logger}, nil
}

// Load reads and decodes the whole collection. A missing file yields
// ErrEmpty; a present but undecodable file yields a decode error so the
// caller can decide between reseeding and failing.
func (r *FileRepository) Load(_ context.Context) ([]models.DataRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read slot file %s: %w", r.path, err)
	}

	var records []models.DataRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode slot file %s: %w", r.path, err)
	}

	r.logger.Debug("slot loaded", zap.String("path", r.path), zap.Int("records", len(records)))
	return records, nil
}

// Save rewrites the slot with the full collection.
func (r *FileRepository) Save(_ context.Context, records []models.DataRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write slot file %s: %w", r.path, err)
	}

	r.logger.Debug("slot saved", zap.String("path", r.path), zap.Int("records", len(records)))
	return nil
}
