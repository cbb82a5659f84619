package models

import "time"

// HousingRecord holds one parsed row of the California Housing dataset.
// A nil field means the cell was empty in the source file.
type HousingRecord struct {
	Longitude        *float32
	Latitude         *float32
	HousingMedianAge *float32
	TotalRooms       *float32
	TotalBedrooms    *float32
	Population       *float32
	Households       *float32
	MedianIncome     *float32
	MedianHouseValue *float32
}

// Dataset is the ordered set of records loaded for one run.
type Dataset []*HousingRecord

// LoadStats reports how many data rows were read, kept and dropped.
type LoadStats struct {
	Rows    int
	Kept    int
	Dropped int
}

// FeatureBuffers are the index-aligned inputs fed to the training graph.
type FeatureBuffers struct {
	Features []float32
	Targets  []float32
}

// Len returns the number of samples in the buffers.
func (b *FeatureBuffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Features)
}

// Parameters are the scalar outputs read back from the graph.
type Parameters struct {
	W float32
	B float32
}

// ParameterCheck compares one learned parameter against its reference value.
type ParameterCheck struct {
	Name      string
	Expected  float32
	Got       float32
	Tolerance float64
	Pass      bool
}

// TrainingResult is the outcome of one Model Runner pass.
type TrainingResult struct {
	Steps      int
	Parameters Parameters
	Checks     []ParameterCheck
	FinalState string
}

// Passed reports whether every parameter check succeeded.
func (r *TrainingResult) Passed() bool {
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// RunRecord is a persisted training run.
type RunRecord struct {
	ID        int64
	DataPath  string
	ModelPath string
	Rows      int
	Dropped   int
	Steps     int
	W         float32
	B         float32
	Passed    bool
	CreatedAt time.Time
}

// Float32 returns a pointer to v, for building records in code.
func Float32(v float32) *float32 {
	return &v
}
