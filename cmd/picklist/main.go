package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"picklist/internal/app"
	"picklist/internal/config"
	"picklist/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory for CSV files (overrides config)")
	outDir := flag.String("out", "", "output directory for report workbooks (overrides config)")
	workers := flag.Int("workers", 0, "number of files processed concurrently (overrides config)")
	dumpFacts := flag.Bool("dump-facts", false, "also write the unpivoted facts of each file as CSV")
	configFile := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *inDir != "" {
		cfg.Paths.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *workers > 0 {
		cfg.Processing.Workers = *workers
	}
	if *dumpFacts {
		cfg.Processing.DumpFacts = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	defer func() {
		if err := telemetry.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	summary, err := app.New(cfg, logger, telemetry).Run(ctx)
	if err != nil {
		// The only fatal condition: the run could not start at all.
		logger.Error("Batch run failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "picklist: %v\n", err)
		os.Exit(1)
	}

	if summary.FilesSeen == 0 {
		fmt.Printf("No CSV files found in %s\n", cfg.Paths.InputDir)
		return
	}
	fmt.Printf("Processed %d of %d files (%d skipped), %d reports written\n",
		summary.FilesProcessed, summary.FilesSeen, summary.FilesSkipped, summary.ReportsWritten)
}
