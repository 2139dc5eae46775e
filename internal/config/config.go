// Package config reads run defaults from the environment. Every value can
// still be overridden per invocation through the entry-point options; the
// environment only supplies defaults for callers that set nothing.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"astmd/adapters/report"
)

// Config holds environment-supplied run defaults.
type Config struct {
	// OutputDir overrides the legacy alongside-the-data output location.
	OutputDir string
	// ReportFormats is a comma-separated list: text, excel, html.
	ReportFormats []report.Format
	// DisablePlots skips chart rendering entirely.
	DisablePlots bool
}

// Load reads ASTMD_* variables, merging a .env file if one is present.
func Load() (*Config, error) {
	// A missing .env is not an error; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		OutputDir: os.Getenv("ASTMD_OUTPUT_DIR"),
	}

	if raw := os.Getenv("ASTMD_REPORT_FORMATS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			f, err := report.ParseFormat(part)
			if err != nil {
				return nil, err
			}
			cfg.ReportFormats = append(cfg.ReportFormats, f)
		}
	}

	if raw := os.Getenv("ASTMD_DISABLE_PLOTS"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		cfg.DisablePlots = v
	}

	return cfg, nil
}
