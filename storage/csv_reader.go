package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"housing-trainer/models"
	"housing-trainer/utils"
)

// column setters keyed by normalised header name.
var columns = map[string]func(r *models.HousingRecord, v *float32){
	"longitude":          func(r *models.HousingRecord, v *float32) { r.Longitude = v },
	"latitude":           func(r *models.HousingRecord, v *float32) { r.Latitude = v },
	"housing_median_age": func(r *models.HousingRecord, v *float32) { r.HousingMedianAge = v },
	"total_rooms":        func(r *models.HousingRecord, v *float32) { r.TotalRooms = v },
	"total_bedrooms":     func(r *models.HousingRecord, v *float32) { r.TotalBedrooms = v },
	"population":         func(r *models.HousingRecord, v *float32) { r.Population = v },
	"households":         func(r *models.HousingRecord, v *float32) { r.Households = v },
	"house_holds":        func(r *models.HousingRecord, v *float32) { r.Households = v },
	"median_income":      func(r *models.HousingRecord, v *float32) { r.MedianIncome = v },
	"median_house_value": func(r *models.HousingRecord, v *float32) { r.MedianHouseValue = v },
}

// HousingReader loads the California Housing CSV into a Dataset.
type HousingReader struct {
	logger      *utils.Logger
	out         io.Writer
	targetScale float32
}

// NewHousingReader creates a reader that divides median_house_value by
// targetScale. The found-file confirmation is printed to out.
func NewHousingReader(logger *utils.Logger, out io.Writer, targetScale float32) *HousingReader {
	return &HousingReader{logger: logger, out: out, targetScale: targetScale}
}

// Load parses the file at path. Rows with malformed cells are dropped and
// counted in the returned LoadStats.
func (h *HousingReader) Load(path string) (models.Dataset, models.LoadStats, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.LoadStats{}, models.NewError(models.KindNotFound, "", "File %s not found!", path)
		}
		return nil, models.LoadStats{}, models.WrapError(models.KindInvalidInput, "csv: stat "+path, err)
	}
	fmt.Fprintf(h.out, "Found file %s!\n", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, models.LoadStats{}, models.WrapError(models.KindInvalidInput, "csv: open "+path, err)
	}
	defer f.Close()

	return h.Read(f)
}

// Read parses CSV data from r. The first row must be the header.
func (h *HousingReader) Read(r io.Reader) (models.Dataset, models.LoadStats, error) {
	var stats models.LoadStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, models.NewError(models.KindInvalidInput, "csv", "missing header row")
	}
	if err != nil {
		return nil, stats, models.WrapError(models.KindInvalidInput, "csv: read header", err)
	}

	setters, err := mapHeader(header)
	if err != nil {
		return nil, stats, err
	}

	dataset := make(models.Dataset, 0, 1024)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, stats, models.WrapError(models.KindInvalidInput, "csv: read", err)
			}
			stats.Rows++
			h.logger.Debug("[reader] Dropping line %d: %v", perr.StartLine, err)
			stats.Dropped++
			continue
		}
		stats.Rows++

		rec, err := h.parseRow(row, setters)
		if err != nil {
			line, _ := reader.FieldPos(0)
			h.logger.Debug("[reader] Dropping line %d: %v", line, err)
			stats.Dropped++
			continue
		}
		dataset = append(dataset, rec)
	}

	stats.Kept = len(dataset)
	if stats.Dropped > 0 {
		h.logger.Warn("[reader] Dropped %d of %d rows that did not match the schema",
			stats.Dropped, stats.Rows)
	}
	h.logger.Info("[reader] Loaded %d records", stats.Kept)
	return dataset, stats, nil
}

func mapHeader(header []string) ([]func(*models.HousingRecord, *float32), error) {
	setters := make([]func(*models.HousingRecord, *float32), len(header))
	known := 0
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if set, ok := columns[name]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return nil, models.NewError(models.KindInvalidInput, "csv", "header has none of the housing columns: %v", header)
	}
	return setters, nil
}

func (h *HousingReader) parseRow(row []string, setters []func(*models.HousingRecord, *float32)) (*models.HousingRecord, error) {
	if len(row) != len(setters) {
		return nil, fmt.Errorf("expected %d cells, got %d", len(setters), len(row))
	}

	rec := &models.HousingRecord{}
	for i, cell := range row {
		set := setters[i]
		if set == nil {
			continue
		}
		v, err := parseCell(cell)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		set(rec, v)
	}

	// Thousands keep the target in a range that suits small learning rates.
	if rec.MedianHouseValue != nil {
		scaled := *rec.MedianHouseValue / h.targetScale
		rec.MedianHouseValue = &scaled
	}
	return rec, nil
}

func parseCell(cell string) (*float32, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cell, 32)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite value %q", cell)
	}
	v := float32(f)
	return &v, nil
}
