package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"crimelens/internal/charts"
	"crimelens/internal/config"
	"crimelens/internal/dataset"
	"crimelens/internal/exporter"
	"crimelens/internal/infrastructure"
	"crimelens/internal/stats"
)

func main() {
	source := flag.String("source", "", "local CSV file to analyze instead of downloading the dataset")
	out := flag.String("out", "", "output directory for charts (overrides configuration)")
	sample := flag.Int("sample", 0, "scatter plot sample cap (overrides configuration)")
	seed := flag.Int64("seed", 0, "random seed for scatter sampling (overrides configuration)")
	noExport := flag.Bool("no-export", false, "skip writing the CSV and workbook exports")
	flag.Parse()

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *source != "" {
		cfg.Dataset.LocalFile = *source
	}
	if *out != "" {
		cfg.Paths.FiguresDir = *out
		cfg.Paths.ExportDir = *out
	}
	if *sample > 0 {
		cfg.Scatter.SampleSize = *sample
	}
	if *seed != 0 {
		cfg.Scatter.Seed = *seed
	}
	if *noExport {
		cfg.Export.Enabled = false
	}
	if cfg.Logging.Output != "console" {
		cfg.Logging.FilePath = filepath.Join(cfg.Paths.LogsDir, "crimelens.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	loader := dataset.NewLoader(logger)

	var table *dataset.Table
	var err error
	if cfg.Dataset.LocalFile != "" {
		logger.InfoContext(ctx, "Loading dataset from file",
			slog.String("file", cfg.Dataset.LocalFile))
		table, err = loader.LoadFile(ctx, cfg.Dataset.LocalFile)
	} else {
		logger.InfoContext(ctx, "Downloading dataset",
			slog.String("url", cfg.Dataset.URL))
		table, err = loader.Fetch(ctx, cfg.Dataset.URL)
	}
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Dataset loaded",
		slog.Int("records", len(table.Incidents)))

	summarizer := stats.NewSummarizer(logger)
	summary := summarizer.Summarize(ctx, table)
	if err := summarizer.WriteText(os.Stdout, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	renderer := charts.NewRenderer(logger, charts.DefaultTheme(), charts.RendererConfig{
		OutputDir:  cfg.Paths.FiguresDir,
		SampleSize: cfg.Scatter.SampleSize,
		Seed:       cfg.Scatter.Seed,
	})
	if err := renderer.RenderAll(ctx, table); err != nil {
		return err
	}

	if cfg.Export.Enabled {
		exp := exporter.NewExporter(logger, cfg.Paths.ExportDir, cfg.Export.Workbook)
		if err := exp.Export(ctx, table, summary); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.String("figures_dir", cfg.Paths.FiguresDir))
	return nil
}
