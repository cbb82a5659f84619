package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"housing-trainer/models"
	"housing-trainer/utils"
)

func TestPrintChecksFormat(t *testing.T) {
	var out bytes.Buffer
	svc := NewReportService(utils.Discard(), &out)

	svc.PrintChecks(&models.TrainingResult{
		Steps: 201,
		Checks: []models.ParameterCheck{
			{Name: "w", Expected: 0.1, Got: 0.1, Tolerance: 1e-3, Pass: true},
			{Name: "b", Expected: 0.3, Got: 0.5, Tolerance: 1e-3, Pass: false},
		},
	})

	want := "Checking w: expected 0.1, got 0.1, Success!\n" +
		"Checking b: expected 0.3, got 0.5, FAIL\n"
	if out.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestDescribe(t *testing.T) {
	d := Describe([]float32{2, 4, 4, 4, 5, 5, 7, 9})
	if d.Mean != 5 {
		t.Errorf("Mean: got %v, want 5", d.Mean)
	}
	if d.Min != 2 || d.Max != 9 {
		t.Errorf("Min/Max: got %v/%v, want 2/9", d.Min, d.Max)
	}
	if d.StdDev <= 0 {
		t.Errorf("StdDev: got %v, want > 0", d.StdDev)
	}
}

func TestDescribeEdgeCases(t *testing.T) {
	if (Describe(nil) != ColumnSummary{}) {
		t.Error("empty input should give a zero summary")
	}
	d := Describe([]float32{3})
	if d.StdDev != 0 || d.Mean != 3 {
		t.Errorf("single value: got %+v", d)
	}
}

func TestSummaryListsCounts(t *testing.T) {
	var out bytes.Buffer
	svc := NewReportService(utils.Discard(), &out)
	svc.Summary(models.LoadStats{Rows: 4, Kept: 3, Dropped: 1}, testBuffers())

	for _, want := range []string{"Rows read    : 4", "Rows dropped : 1", "total_rooms", "median_house_value"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	svc := NewReportService(utils.Discard(), &out)

	svc.PrintHistory(nil)
	if out.Len() != 0 {
		t.Errorf("empty history should print nothing, got %q", out.String())
	}

	svc.PrintHistory([]*models.RunRecord{{ID: 3, Steps: 201, W: 0.1, B: 0.3, Passed: true, CreatedAt: time.Now()}})
	if !strings.Contains(out.String(), "#3") || !strings.Contains(out.String(), "ok") {
		t.Errorf("history output: %q", out.String())
	}
}
