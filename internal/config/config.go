package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Layout     Layout           `yaml:"layout" envconfig:"LAYOUT"`
}

// PathsConfig contains input/output directory configuration.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"input" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/picklist.log"`
}

// TelemetryConfig controls OpenTelemetry tracing and metrics. Both are
// disabled by default; the stdout trace exporter is meant for debugging runs.
type TelemetryConfig struct {
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING" default:"false"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS" default:"false"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout" validate:"oneof=stdout none"`
}

// ProcessingConfig contains batch processing configuration.
type ProcessingConfig struct {
	// Workers bounds how many input files are processed concurrently.
	// Files are independent units of work; 1 preserves strictly serial
	// processing.
	Workers   int  `yaml:"workers" envconfig:"WORKERS" default:"1" validate:"min=1,max=64"`
	DumpFacts bool `yaml:"dump_facts" envconfig:"DUMP_FACTS" default:"false"`
}

// Load loads configuration from environment variables (PICKLIST_* prefix)
// and an optional YAML file. File values overlay env/default values; fields
// absent from the file keep whatever envconfig resolved.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PICKLIST", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if err := applyFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	if cfg.Layout.isZero() {
		cfg.Layout = DefaultLayout()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyFile overlays values from a YAML file onto cfg. Only fields present
// in the file are overwritten; envconfig defaults survive for the rest.
func applyFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return c.Layout.Validate()
}
