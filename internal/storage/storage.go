package storage

import (
	"time"

	"ctr/internal/config"
	"ctr/internal/domain"
)

// Storage persists and loads run summaries (e.g. for the faills viewer).
type Storage interface {
	Save(reports []domain.SuiteReport, duration time.Duration, workers int) error
	Load() (*domain.RunSummary, error)
	// SaveOutput writes the full summary (e.g. after failures were marked resolved).
	SaveOutput(output *domain.RunSummary) error
}

// JSONStorage stores summaries in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}
