package services

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"housing-trainer/models"
	"housing-trainer/utils"
)

// ColumnSummary holds descriptive statistics for one buffer.
type ColumnSummary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// ReportService prints dataset summaries and training results.
type ReportService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewReportService(logger *utils.Logger, out io.Writer) *ReportService {
	return &ReportService{logger: logger, out: out}
}

// Describe computes summary statistics over values. An empty slice gives a zero summary.
func Describe(values []float32) ColumnSummary {
	if len(values) == 0 {
		return ColumnSummary{}
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}
	return ColumnSummary{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
	}
}

func (s *ReportService) Summary(stats models.LoadStats, buf *models.FeatureBuffers) {
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(s.out, "\n  Dataset\n")
	fmt.Fprintf(s.out, "  %s\n", thin)
	fmt.Fprintf(s.out, "  Rows read    : %d\n", stats.Rows)
	fmt.Fprintf(s.out, "  Rows kept    : %d\n", stats.Kept)
	fmt.Fprintf(s.out, "  Rows dropped : %d\n", stats.Dropped)

	if buf.Len() == 0 {
		fmt.Fprintf(s.out, "  No samples available\n\n")
		return
	}

	fmt.Fprintf(s.out, "  %-20s %12s %12s %12s %12s\n", "column", "mean", "stddev", "min", "max")
	for _, col := range []struct {
		name   string
		values []float32
	}{
		{"total_rooms", buf.Features},
		{"median_house_value", buf.Targets},
	} {
		d := Describe(col.values)
		fmt.Fprintf(s.out, "  %-20s %12.3f %12.3f %12.3f %12.3f\n", col.name, d.Mean, d.StdDev, d.Min, d.Max)
	}
	fmt.Fprintln(s.out)
}

// PrintChecks writes one "Checking" line per learned parameter.
func (s *ReportService) PrintChecks(r *models.TrainingResult) {
	for _, c := range r.Checks {
		verdict := "FAIL"
		if c.Pass {
			verdict = "Success!"
		}
		fmt.Fprintf(s.out, "Checking %s: expected %v, got %v, %s\n", c.Name, c.Expected, c.Got, verdict)
	}
	if !r.Passed() {
		s.logger.Warn("[report] Learned parameters outside tolerance after %d steps", r.Steps)
	}
}

func (s *ReportService) PrintHistory(runs []*models.RunRecord) {
	if len(runs) == 0 {
		return
	}
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(s.out, "\n  Recent runs\n")
	fmt.Fprintf(s.out, "  %s\n", thin)
	for _, r := range runs {
		verdict := "FAIL"
		if r.Passed {
			verdict = "ok"
		}
		fmt.Fprintf(s.out, "  #%-5d %s  steps=%-4d w=%-10v b=%-10v %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Steps, r.W, r.B, verdict)
	}
	fmt.Fprintln(s.out)
}
