package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"crimelens/internal/dataset"
	"crimelens/internal/errors"
	"crimelens/internal/stats"
)

// Exporter writes the tabular export artifacts.
type Exporter struct {
	logger    *slog.Logger
	outputDir string
	workbook  string
}

// NewExporter creates an exporter writing into outputDir. A nil logger
// falls back to slog.Default.
func NewExporter(logger *slog.Logger, outputDir, workbook string) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if workbook == "" {
		workbook = "crime_analysis.xlsx"
	}
	return &Exporter{logger: logger, outputDir: outputDir, workbook: workbook}
}

// Export writes the monthly counts CSV and the analysis workbook. Aggregates
// whose source columns are absent are left out of the workbook.
func (e *Exporter) Export(ctx context.Context, table *dataset.Table, summary stats.Summary) error {
	if table.Schema.HasDate {
		path := filepath.Join(e.outputDir, FileMonthlyCounts)
		monthly := stats.MonthlyCounts(table)
		headers := []string{"period", "count", "rolling_mean_12"}
		if err := writeCSV(path, headers, monthlyCountRecords(monthly)); err != nil {
			return err
		}
		e.logger.InfoContext(ctx, "monthly counts exported",
			slog.String("file", path),
			slog.Int("periods", len(monthly)))
	}

	return e.writeWorkbook(ctx, table, summary)
}

func (e *Exporter) writeWorkbook(ctx context.Context, table *dataset.Table, summary stats.Summary) error {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return errors.NewStorageError("failed to create export directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, summary); err != nil {
		return err
	}
	if table.Schema.HasDate {
		if err := e.writeMonthlySheet(f, table); err != nil {
			return err
		}
		if err := e.writeYearMonthSheet(f, table); err != nil {
			return err
		}
	}
	if table.Schema.HasTime && table.Schema.HasDate {
		if err := e.writeHourWeekdaySheet(f, table); err != nil {
			return err
		}
	}

	path := filepath.Join(e.outputDir, e.workbook)
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("file", path)
	}
	e.logger.InfoContext(ctx, "workbook exported", slog.String("file", path))
	return nil
}

func (e *Exporter) writeSummarySheet(f *excelize.File, summary stats.Summary) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.NewStorageError("failed to rename summary sheet", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total records", summary.RecordCount},
	}
	if summary.HasDateRange {
		rows = append(rows,
			[]interface{}{"First occurrence date", summary.DateMin.Format("2006-01-02")},
			[]interface{}{"Last occurrence date", summary.DateMax.Format("2006-01-02")})
	}
	if summary.HasCrimeTypes {
		rows = append(rows,
			[]interface{}{"Unique crime types", summary.DistinctCrimeTypes},
			[]interface{}{"Most common crime type", summary.TopCrimeType})
	}
	if summary.HasTopArea {
		rows = append(rows,
			[]interface{}{"Top area", summary.TopArea},
			[]interface{}{"Crimes in top area", summary.TopAreaCount})
	}
	if summary.HasMonthlyMean {
		rows = append(rows, []interface{}{"Average crimes per month", summary.MeanPerMonth})
	}
	if summary.HasVictimAge {
		rows = append(rows, []interface{}{"Average victim age", summary.MeanVictimAge})
	}
	if summary.HasTopDescent {
		rows = append(rows,
			[]interface{}{"Top victim descent", summary.TopDescentLabel},
			[]interface{}{"Crimes for top descent", summary.TopDescentCount})
	}

	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeMonthlySheet(f *excelize.File, table *dataset.Table) error {
	const sheet = "MonthlyTrend"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create monthly sheet", err)
	}

	monthly := stats.MonthlyCounts(table)
	counts := make([]float64, len(monthly))
	for i, pc := range monthly {
		counts[i] = float64(pc.Count)
	}
	rolling := stats.RollingMean(counts, 12)

	rows := [][]interface{}{{"Period", "Count", "Rolling Mean (12)"}}
	for i, pc := range monthly {
		rows = append(rows, []interface{}{pc.Period, pc.Count, rolling[i]})
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeHourWeekdaySheet(f *excelize.File, table *dataset.Table) error {
	const sheet = "HourWeekday"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create hour/weekday sheet", err)
	}

	pivot := stats.HourWeekdayPivot(table)

	header := []interface{}{"Hour"}
	for _, day := range stats.WeekdayOrder {
		header = append(header, day.String())
	}
	rows := [][]interface{}{header}
	for hour := 0; hour < 24; hour++ {
		row := []interface{}{hour}
		for day := 0; day < 7; day++ {
			row = append(row, pivot[hour][day])
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeYearMonthSheet(f *excelize.File, table *dataset.Table) error {
	const sheet = "YearMonth"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create year/month sheet", err)
	}

	pivot := stats.YearMonthCounts(table)

	header := []interface{}{"Year"}
	for month := 1; month <= 12; month++ {
		header = append(header, monthName(month))
	}
	rows := [][]interface{}{header}
	for i, year := range pivot.Years {
		row := []interface{}{year}
		for month := 0; month < 12; month++ {
			row = append(row, pivot.Counts[i][month])
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

// writeRows writes rows into the sheet starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewStorageError("failed to compute cell name", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write sheet row", err).
				WithContext("sheet", sheet)
		}
	}
	return nil
}

func monthName(month int) string {
	return [...]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}[month-1]
}
