package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astmd/adapters/report"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ASTMD_OUTPUT_DIR", "")
	t.Setenv("ASTMD_REPORT_FORMATS", "")
	t.Setenv("ASTMD_DISABLE_PLOTS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.OutputDir)
	assert.Empty(t, cfg.ReportFormats)
	assert.False(t, cfg.DisablePlots)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ASTMD_OUTPUT_DIR", "/tmp/results")
	t.Setenv("ASTMD_REPORT_FORMATS", "text, excel")
	t.Setenv("ASTMD_DISABLE_PLOTS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/results", cfg.OutputDir)
	assert.Equal(t, []report.Format{report.FormatText, report.FormatExcel}, cfg.ReportFormats)
	assert.True(t, cfg.DisablePlots)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("ASTMD_REPORT_FORMATS", "pdf")

	_, err := Load()
	assert.Error(t, err)
}
