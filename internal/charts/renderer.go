package charts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"crimelens/internal/dataset"
	"crimelens/internal/errors"
)

// Chart file names, fixed per artifact.
const (
	FileMonthlyTrend       = "monthly_trend.png"
	FileWeekday            = "crimes_weekday.png"
	FileHourly             = "crimes_hours.png"
	FileHourWeekdayHeatmap = "hour_weekday_heatmap.png"
	FileTopAreas           = "top_areas.png"
	FileTopCrimes          = "top_crimes.png"
	FileVictimAge          = "victim_age.png"
	FileVictimSex          = "victim_sex.png"
	FileVictimDescent      = "victim_descent.png"
	FileSpatialScatter     = "la_lat_lon.png"
	FileYearMonthHeatmap   = "year_month_heatmap.png"
)

// RendererConfig holds the renderer's non-visual knobs.
type RendererConfig struct {
	OutputDir  string
	SampleSize int // scatter plot sample cap
	Seed       int64
}

// Renderer produces the chart artifacts from the incident table. Each chart
// is an independent read of the table, gated on the Schema capabilities it
// needs; a chart that cannot run is skipped, a chart that fails to render
// aborts the run.
type Renderer struct {
	logger *slog.Logger
	theme  Theme
	config RendererConfig
}

// NewRenderer creates a renderer with the given theme and configuration.
// A nil logger falls back to slog.Default.
func NewRenderer(logger *slog.Logger, theme Theme, config RendererConfig) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SampleSize <= 0 {
		config.SampleSize = 100000
	}
	return &Renderer{logger: logger, theme: theme, config: config}
}

// RenderAll renders every applicable chart into the output directory,
// creating it if needed. The charts run in a fixed order; the first render
// failure is returned.
func (r *Renderer) RenderAll(ctx context.Context, table *dataset.Table) error {
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return errors.NewStorageError("failed to create figures directory", err)
	}

	schema := table.Schema
	steps := []struct {
		name    string
		file    string
		enabled bool
		render  func(*dataset.Table, string) error
	}{
		{"monthly trend", FileMonthlyTrend, schema.HasDate, r.monthlyTrend},
		{"weekday distribution", FileWeekday, schema.HasDate, r.weekdayBars},
		{"hourly distribution", FileHourly, schema.HasTime, r.hourlyBars},
		{"hour/weekday heatmap", FileHourWeekdayHeatmap, schema.HasTime && schema.HasDate, r.hourWeekdayHeatmap},
		{"top areas", FileTopAreas, schema.HasArea, r.topAreas},
		{"top crime types", FileTopCrimes, schema.HasCrimeType, r.topCrimes},
		{"victim age histogram", FileVictimAge, schema.HasVictimAge, r.ageHistogram},
		{"victim sex pie", FileVictimSex, schema.HasVictimSex, r.sexPie},
		{"victim descent groups", FileVictimDescent, schema.HasVictimDescent, r.descentBars},
		{"spatial scatter", FileSpatialScatter, schema.HasCoordinates, r.spatialScatter},
		{"year/month heatmap", FileYearMonthHeatmap, schema.HasDate, r.yearMonthHeatmap},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !step.enabled {
			r.logger.DebugContext(ctx, "chart skipped, source column absent",
				slog.String("chart", step.name))
			continue
		}

		path := filepath.Join(r.config.OutputDir, step.file)
		if err := step.render(table, path); err != nil {
			return errors.NewRenderError("failed to render "+step.name, err).
				WithContext("file", path)
		}
		r.logger.InfoContext(ctx, "chart rendered",
			slog.String("chart", step.name),
			slog.String("file", path))
	}

	return nil
}
