package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"crimelens/internal/dataset"
)

// Summary holds the KPI block printed at the end of a run. Each optional
// statistic carries its own presence flag; absent source columns leave the
// flag false and the statistic is omitted from the rendered block.
type Summary struct {
	RecordCount int

	HasDateRange bool
	DateMin      time.Time
	DateMax      time.Time

	HasCrimeTypes      bool
	DistinctCrimeTypes int
	TopCrimeType       string

	HasTopArea   bool
	TopArea      string
	TopAreaCount int

	HasMonthlyMean  bool
	MeanPerMonth    float64
	HasVictimAge    bool
	MeanVictimAge   float64
	HasTopDescent   bool
	TopDescentLabel string
	TopDescentCount int
}

// Summarizer computes the KPI summary from the incident table.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to slog.Default.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize computes every statistic whose source column is present.
// Statistics are independent: a skipped statistic never affects another.
func (s *Summarizer) Summarize(ctx context.Context, table *dataset.Table) Summary {
	summary := Summary{RecordCount: len(table.Incidents)}

	if table.Schema.HasDate {
		summary.DateMin, summary.DateMax, summary.HasDateRange = dateRange(table)
	}

	if table.Schema.HasCrimeType {
		counts := CrimeTypeCounts(table)
		if top := TopCounts(counts, 1); len(top) > 0 {
			summary.HasCrimeTypes = true
			summary.DistinctCrimeTypes = len(counts)
			summary.TopCrimeType = top[0].Label
		}
	}

	if table.Schema.HasArea {
		if top := TopCounts(AreaCounts(table), 1); len(top) > 0 {
			summary.HasTopArea = true
			summary.TopArea = top[0].Label
			summary.TopAreaCount = top[0].Count
		}
	}

	if table.Schema.HasDate {
		if monthly := MonthlyCounts(table); len(monthly) > 0 {
			total := 0
			for _, pc := range monthly {
				total += pc.Count
			}
			summary.HasMonthlyMean = true
			summary.MeanPerMonth = float64(total) / float64(len(monthly))
		}
	}

	if table.Schema.HasVictimAge {
		if ages := ValidAges(table); len(ages) > 0 {
			summary.HasVictimAge = true
			summary.MeanVictimAge = stat.Mean(ages, nil)
		}
	}

	if table.Schema.HasVictimDescent {
		if top := TopCounts(DescentCounts(table), 1); len(top) > 0 {
			summary.HasTopDescent = true
			summary.TopDescentLabel = top[0].Label
			summary.TopDescentCount = top[0].Count
		}
	}

	s.logger.InfoContext(ctx, "summary computed",
		slog.Int("records", summary.RecordCount),
		slog.Bool("date_range", summary.HasDateRange))

	return summary
}

// WriteText renders the summary as the fixed-format console block. Means
// are printed to one decimal place; repeated runs over the same table
// produce byte-identical output.
func (s *Summarizer) WriteText(w io.Writer, summary Summary) error {
	lines := []string{
		"========= KPI Summary =========",
		fmt.Sprintf("Total records:            %d", summary.RecordCount),
	}

	if summary.HasDateRange {
		lines = append(lines, fmt.Sprintf("Date range:               %s to %s",
			summary.DateMin.Format("2006-01-02"), summary.DateMax.Format("2006-01-02")))
	}
	if summary.HasCrimeTypes {
		lines = append(lines,
			fmt.Sprintf("Unique crime types:       %d", summary.DistinctCrimeTypes),
			fmt.Sprintf("Most common crime type:   %s", summary.TopCrimeType))
	}
	if summary.HasTopArea {
		lines = append(lines,
			fmt.Sprintf("Top area by count:        %s", summary.TopArea),
			fmt.Sprintf("Crimes in %s:   %d", summary.TopArea, summary.TopAreaCount))
	}
	if summary.HasMonthlyMean {
		lines = append(lines, fmt.Sprintf("Average crimes per month: %.1f", summary.MeanPerMonth))
	}
	if summary.HasVictimAge {
		lines = append(lines, fmt.Sprintf("Average victim age:       %.1f", summary.MeanVictimAge))
	}
	if summary.HasTopDescent {
		lines = append(lines, fmt.Sprintf("Top victim descent:       %s: %d",
			summary.TopDescentLabel, summary.TopDescentCount))
	}

	lines = append(lines, "===============================")

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// dateRange finds the earliest and latest parsed occurrence dates.
func dateRange(table *dataset.Table) (time.Time, time.Time, bool) {
	var min, max time.Time
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasDate() {
			continue
		}
		if min.IsZero() || in.Date.Before(min) {
			min = in.Date
		}
		if max.IsZero() || in.Date.After(max) {
			max = in.Date
		}
	}
	return min, max, !min.IsZero()
}
