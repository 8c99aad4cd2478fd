package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" envconfig:"DATASET"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Scatter ScatterConfig `yaml:"scatter" envconfig:"SCATTER"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// DatasetConfig describes where the incident data comes from
type DatasetConfig struct {
	// URL is the bulk CSV download endpoint of the public dataset.
	URL string `yaml:"url" envconfig:"URL"`
	// LocalFile, when set, is read instead of fetching URL.
	LocalFile string `yaml:"local_file" envconfig:"LOCAL_FILE"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	FiguresDir string `yaml:"figures_dir" envconfig:"FIGURES_DIR"`
	ExportDir  string `yaml:"export_dir" envconfig:"EXPORT_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ScatterConfig controls the spatial scatter sampling
type ScatterConfig struct {
	SampleSize int   `yaml:"sample_size" envconfig:"SAMPLE_SIZE"`
	Seed       int64 `yaml:"seed" envconfig:"SEED"`
}

// ExportConfig controls the aggregate table artifacts written next to the charts
type ExportConfig struct {
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load builds the configuration in three layers: defaults, then the optional
// config file, then environment variables. Later layers win, so an explicit
// CRIMELENS_* variable always overrides the file and a file value only
// replaces a default when the file sets it.
func Load() (*Config, error) {
	cfg := *Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// envconfig only touches fields whose environment variable is set.
	if err := envconfig.Process("CRIMELENS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays YAML settings onto cfg; keys absent from the file
// leave the existing values untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Dataset.URL == "" && c.Dataset.LocalFile == "" {
		return fmt.Errorf("either a dataset URL or a local file must be configured")
	}

	if c.Paths.FiguresDir == "" {
		return fmt.Errorf("figures directory must not be empty")
	}

	if c.Scatter.SampleSize <= 0 {
		return fmt.Errorf("invalid scatter sample size: %d", c.Scatter.SampleSize)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		c.Logging.Format = "text"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/crimelens.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			URL: "https://data.lacity.org/api/views/2nrs-mtv8/rows.csv?accessType=DOWNLOAD",
		},
		Paths: PathsConfig{
			FiguresDir: "figures",
			ExportDir:  "figures",
			LogsDir:    "logs",
		},
		Scatter: ScatterConfig{
			SampleSize: 100000,
			Seed:       1,
		},
		Export: ExportConfig{
			Enabled:  true,
			Workbook: "crime_analysis.xlsx",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/crimelens.log",
		},
	}
}
