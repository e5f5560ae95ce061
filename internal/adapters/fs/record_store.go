package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// RecordStoreAdapter implements DeploymentRecordStore with one YAML file per network
type RecordStoreAdapter struct {
	dir string
}

// NewRecordStoreAdapter creates a new RecordStoreAdapter
func NewRecordStoreAdapter(cfg *config.RuntimeConfig) *RecordStoreAdapter {
	return &RecordStoreAdapter{
		dir: filepath.Join(cfg.DataDir, "deployments"),
	}
}

// GetPath returns the record file of a network
func (s *RecordStoreAdapter) GetPath(network string) string {
	return filepath.Join(s.dir, network+".yaml")
}

// Load reads the record of a network. Returns an empty record if the file does not exist.
func (s *RecordStoreAdapter) Load(_ context.Context, network string) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(s.GetPath(network))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.DeploymentRecord{Network: network}, nil
		}
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}

	var record models.DeploymentRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record: %w", err)
	}
	return &record, nil
}

// Save writes the record to disk, creating the directory if needed.
func (s *RecordStoreAdapter) Save(_ context.Context, record *models.DeploymentRecord) error {
	if record.Network == "" {
		return fmt.Errorf("deployment record has no network")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}

	// Write to temp file first
	path := s.GetPath(record.Network)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write deployment record: %w", err)
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// Ensure RecordStoreAdapter implements DeploymentRecordStore
var _ usecase.DeploymentRecordStore = (*RecordStoreAdapter)(nil)
