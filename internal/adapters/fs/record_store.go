package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// RecordStoreAdapter reads and writes deployment record files
type RecordStoreAdapter struct{}

// NewRecordStoreAdapter creates a new RecordStoreAdapter
func NewRecordStoreAdapter() *RecordStoreAdapter {
	return &RecordStoreAdapter{}
}

// SaveRecord writes the record to path, replacing any previous record
func (s *RecordStoreAdapter) SaveRecord(ctx context.Context, path string, record *models.DeploymentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}
	return writeJSON(path, record)
}

// LoadRecord reads the record at path
func (s *RecordStoreAdapter) LoadRecord(ctx context.Context, path string) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no deployment record at %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record %s: %w", path, err)
	}
	return &record, nil
}

// writeJSON writes v to a temp file next to path and renames it into place
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

var _ usecase.DeploymentRecordStore = (*RecordStoreAdapter)(nil)
