package storage

import "housing-trainer/models"

// DatasetLoader is the interface any dataset source must satisfy.
type DatasetLoader interface {
	Load(path string) (models.Dataset, models.LoadStats, error)
}

// FeatureWriter is the interface for exporting prepared buffers.
type FeatureWriter interface {
	WriteBuffers(buf *models.FeatureBuffers) error
	Close() error
}

// RunWriter is the interface for persisting training runs.
type RunWriter interface {
	Write(run *models.RunRecord, buf *models.FeatureBuffers) (int64, error)
	FetchRecent(limit int) ([]*models.RunRecord, error)
	Close() error
}

var (
	_ DatasetLoader = (*HousingReader)(nil)
	_ FeatureWriter = (*CSVWriter)(nil)
	_ RunWriter     = (*PostgresWriter)(nil)
)
