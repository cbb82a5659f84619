package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"housing-trainer/models"
)

// CSVWriter exports prepared feature buffers to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, models.WrapError(models.KindStorage, "csv: create output dir", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, models.WrapError(models.KindStorage, fmt.Sprintf("csv: create file %q", path), err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{"index", "total_rooms", "median_house_value"}); err != nil {
		_ = f.Close()
		return nil, models.WrapError(models.KindStorage, "csv: write header", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteBuffers writes one row per sample in buf.
func (c *CSVWriter) WriteBuffers(buf *models.FeatureBuffers) error {
	for i := 0; i < buf.Len(); i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(buf.Features[i]), 'f', -1, 32),
			strconv.FormatFloat(float64(buf.Targets[i]), 'f', -1, 32),
		}
		if err := c.writer.Write(row); err != nil {
			return models.WrapError(models.KindStorage, "csv: write row", err)
		}
	}

	c.writer.Flush()
	return models.WrapError(models.KindStorage, "csv: flush", c.writer.Error())
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
