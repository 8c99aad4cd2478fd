package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirWithConfig writes a config.yaml into a fresh directory and makes it
// the working directory for the test, so Load picks the file up.
func chdirWithConfig(t *testing.T, yaml string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.Dataset.URL, "data.lacity.org")
	assert.Equal(t, "figures", cfg.Paths.FiguresDir)
	assert.Equal(t, 100000, cfg.Scatter.SampleSize)
	assert.Equal(t, int64(1), cfg.Scatter.Seed)
	assert.True(t, cfg.Export.Enabled)
	assert.Equal(t, "crime_analysis.xlsx", cfg.Export.Workbook)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CRIMELENS_DATASET_LOCAL_FILE", "incidents.csv")
	t.Setenv("CRIMELENS_PATHS_FIGURES_DIR", "out/figures")
	t.Setenv("CRIMELENS_SCATTER_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "incidents.csv", cfg.Dataset.LocalFile)
	assert.Equal(t, "out/figures", cfg.Paths.FiguresDir)
	assert.Equal(t, int64(7), cfg.Scatter.Seed)
	assert.Contains(t, cfg.Dataset.URL, "data.lacity.org", "unset fields keep defaults")
}

func TestLoadFromFile(t *testing.T) {
	chdirWithConfig(t, `
dataset:
  url: https://example.org/data.csv
scatter:
  sample_size: 500
  seed: 9
export:
  enabled: false
logging:
  level: debug
  output: file
  file_path: logs/custom.log
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/data.csv", cfg.Dataset.URL)
	assert.Equal(t, 500, cfg.Scatter.SampleSize)
	assert.Equal(t, int64(9), cfg.Scatter.Seed)
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "logs/custom.log", cfg.Logging.FilePath)
	assert.Equal(t, "figures", cfg.Paths.FiguresDir, "keys absent from the file keep defaults")
	assert.Equal(t, "crime_analysis.xlsx", cfg.Export.Workbook)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirWithConfig(t, `
scatter:
  seed: 9
logging:
  level: debug
`)
	t.Setenv("CRIMELENS_SCATTER_SEED", "42")
	t.Setenv("CRIMELENS_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Scatter.Seed, "explicit env var wins over file")
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name: "missing dataset source",
			mutate: func(c *Config) {
				c.Dataset.URL = ""
				c.Dataset.LocalFile = ""
			},
			wantErr: "dataset URL or a local file",
		},
		{
			name:   "local file alone suffices",
			mutate: func(c *Config) { c.Dataset.URL = ""; c.Dataset.LocalFile = "x.csv" },
		},
		{
			name:    "empty figures dir",
			mutate:  func(c *Config) { c.Paths.FiguresDir = "" },
			wantErr: "figures directory",
		},
		{
			name:    "non positive sample size",
			mutate:  func(c *Config) { c.Scatter.SampleSize = 0 },
			wantErr: "sample size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Logging.FilePath = ""
	require.NoError(t, cfg.validate())
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Logging.FilePath)
}
