// config.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"oelmerger/internal/grid"
	"oelmerger/internal/report"
)

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Grid   GridConfig   `yaml:"grid"`
	Export ExportConfig `yaml:"export"`
	Chart  ChartConfig  `yaml:"chart"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener and upload limits
type ServerConfig struct {
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// MaxUploadBytes bounds multipart bodies on /import
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// MaxImportRows bounds the data rows of one imported file
	MaxImportRows int `yaml:"max_import_rows"`
}

// GridConfig sets the frequency grid, in THz
type GridConfig struct {
	StartTHz float64 `yaml:"start_thz"`
	EndTHz   float64 `yaml:"end_thz"`
	StepTHz  float64 `yaml:"step_thz"`
}

// ExportConfig configures the spreadsheet download
type ExportConfig struct {
	SheetName      string `yaml:"sheet_name"`
	FilenamePrefix string `yaml:"filename_prefix"`
	FreeColor      string `yaml:"free_color"`
	UsedColor      string `yaml:"used_color"`
}

// ChartConfig configures the /chart page
type ChartConfig struct {
	// AssetsHost is where the echarts scripts are loaded from (empty = go-echarts default)
	AssetsHost string `yaml:"assets_host"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level"`
}

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// DefaultConfig returns a Config with the standard grid and export colours
func DefaultConfig() *Config {
	opts := report.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ShutdownTimeout: 5 * time.Second,
			MaxUploadBytes:  10 << 20,
			MaxImportRows:   10000,
		},
		Grid: GridConfig{
			StartTHz: grid.DefaultStartTHz,
			EndTHz:   grid.DefaultEndTHz,
			StepTHz:  grid.DefaultStepTHz,
		},
		Export: ExportConfig{
			SheetName:      opts.SheetName,
			FilenamePrefix: "oel",
			FreeColor:      opts.FreeColor,
			UsedColor:      opts.UsedColor,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if _, err := c.NewGrid(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if c.Export.SheetName == "" || len(c.Export.SheetName) > maxSheetName {
		return fmt.Errorf("export.sheet_name must be 1-%d characters", maxSheetName)
	}
	if c.Export.FilenamePrefix == "" {
		return fmt.Errorf("export.filename_prefix is required")
	}
	if _, err := report.ParseColor(c.Export.FreeColor); err != nil {
		return fmt.Errorf("export.free_color: %w", err)
	}
	if _, err := report.ParseColor(c.Export.UsedColor); err != nil {
		return fmt.Errorf("export.used_color: %w", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// NewGrid builds the configured grid.
func (c *Config) NewGrid() (*grid.Grid, error) {
	return grid.NewTHz(c.Grid.StartTHz, c.Grid.EndTHz, c.Grid.StepTHz)
}

// ReportOptions maps the export and chart sections onto report.Options.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		SheetName:  c.Export.SheetName,
		FreeColor:  c.Export.FreeColor,
		UsedColor:  c.Export.UsedColor,
		AssetsHost: strings.TrimSpace(c.Chart.AssetsHost),
	}
}
