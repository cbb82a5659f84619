package services

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"housing-trainer/models"
	"housing-trainer/storage"
	"housing-trainer/utils"
)

func TestPrepareMapsMissingToZero(t *testing.T) {
	ds := models.Dataset{
		{TotalRooms: models.Float32(2000), MedianHouseValue: models.Float32(300)},
		{MedianHouseValue: models.Float32(150)},
		{TotalRooms: models.Float32(1500)},
	}

	buf := NewFeaturePreparer(utils.Discard()).Prepare(ds)

	wantFeatures := []float32{2000, 0, 1500}
	wantTargets := []float32{300, 150, 0}
	if buf.Len() != len(ds) || len(buf.Targets) != len(ds) {
		t.Fatalf("buffer lengths: got %d/%d, want %d", len(buf.Features), len(buf.Targets), len(ds))
	}
	for i := range ds {
		if buf.Features[i] != wantFeatures[i] {
			t.Errorf("Features[%d]: got %v, want %v", i, buf.Features[i], wantFeatures[i])
		}
		if buf.Targets[i] != wantTargets[i] {
			t.Errorf("Targets[%d]: got %v, want %v", i, buf.Targets[i], wantTargets[i])
		}
		if math.IsNaN(float64(buf.Features[i])) || math.IsNaN(float64(buf.Targets[i])) {
			t.Errorf("index %d contains NaN", i)
		}
	}
}

func TestPrepareEmptyDataset(t *testing.T) {
	buf := NewFeaturePreparer(utils.Discard()).Prepare(models.Dataset{})
	if buf.Len() != 0 || len(buf.Targets) != 0 {
		t.Errorf("expected empty buffers, got %d/%d", len(buf.Features), len(buf.Targets))
	}
}

// Load, shuffle and prepare the three-row fixture and check that every
// buffer index still derives from the same source row.
func TestLoadShufflePrepareEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "housing.csv")
	body := "total_rooms,median_house_value\n" +
		"2000,300000\n" +
		",150000\n" +
		"1500,\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ds, stats, err := storage.NewHousingReader(utils.Discard(), io.Discard, 1000).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Kept != 3 {
		t.Fatalf("kept: got %d, want 3", stats.Kept)
	}

	NewSeededShuffler(11).Shuffle(ds)
	buf := NewFeaturePreparer(utils.Discard()).Prepare(ds)

	pairs := map[float32]float32{2000: 300, 0: 150, 1500: 0}
	for i := 0; i < buf.Len(); i++ {
		want, ok := pairs[buf.Features[i]]
		if !ok {
			t.Errorf("unexpected feature %v at %d", buf.Features[i], i)
			continue
		}
		if buf.Targets[i] != want {
			t.Errorf("index %d: feature %v paired with target %v, want %v",
				i, buf.Features[i], buf.Targets[i], want)
		}
		delete(pairs, buf.Features[i])
	}
	if len(pairs) != 0 {
		t.Errorf("missing samples: %v", pairs)
	}
}
