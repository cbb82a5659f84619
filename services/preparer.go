package services

import (
	"housing-trainer/models"
	"housing-trainer/utils"
)

// FeaturePreparer extracts the training columns from a Dataset.
type FeaturePreparer struct {
	logger *utils.Logger
}

// NewFeaturePreparer creates a FeaturePreparer with the given logger.
func NewFeaturePreparer(logger *utils.Logger) *FeaturePreparer {
	return &FeaturePreparer{logger: logger}
}

// Prepare builds the total_rooms feature buffer and the median_house_value
// target buffer. Absent values become 0.
func (p *FeaturePreparer) Prepare(ds models.Dataset) *models.FeatureBuffers {
	buf := &models.FeatureBuffers{
		Features: make([]float32, len(ds)),
		Targets:  make([]float32, len(ds)),
	}

	var missingRooms, missingValue int
	for i, r := range ds {
		if r.TotalRooms != nil {
			buf.Features[i] = *r.TotalRooms
		} else {
			missingRooms++
		}
		if r.MedianHouseValue != nil {
			buf.Targets[i] = *r.MedianHouseValue
		} else {
			missingValue++
		}
	}

	p.logger.Info("[preparer] Prepared %d samples (total_rooms missing: %d, median_house_value missing: %d)",
		len(ds), missingRooms, missingValue)
	return buf
}
