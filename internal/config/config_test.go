package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "input", cfg.Paths.InputDir)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Processing.Workers)
	assert.False(t, cfg.Telemetry.EnableTracing)
	assert.Equal(t, DefaultLayout(), cfg.Layout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PICKLIST_PATHS_INPUT_DIR", "/data/in")
	t.Setenv("PICKLIST_PROCESSING_WORKERS", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/in", cfg.Paths.InputDir)
	assert.Equal(t, 4, cfg.Processing.Workers)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
paths:
  input_dir: exports
logging:
  level: debug
processing:
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "exports", cfg.Paths.InputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Processing.Workers)
	// Untouched fields keep their defaults.
	assert.Equal(t, "output", cfg.Paths.OutputDir)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"PICKLIST_LOGGING_LEVEL": "verbose"}},
		{"zero workers", map[string]string{"PICKLIST_PROCESSING_WORKERS": "0"}},
		{"bad trace exporter", map[string]string{"PICKLIST_TELEMETRY_TRACE_EXPORTER": "jaeger"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
