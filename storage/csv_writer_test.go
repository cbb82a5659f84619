package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"housing-trainer/models"
)

func TestCSVWriterWritesBuffers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "features.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	buf := &models.FeatureBuffers{
		Features: []float32{2000, 0, 1500},
		Targets:  []float32{300, 150, 0},
	}
	if err := w.WriteBuffers(buf); err != nil {
		t.Fatalf("WriteBuffers: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	want := [][]string{
		{"index", "total_rooms", "median_house_value"},
		{"0", "2000", "300"},
		{"1", "0", "150"},
		{"2", "1500", "0"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %d, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d: got %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}
