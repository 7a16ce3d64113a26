package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"picklist/internal/config"
	"picklist/internal/dataprocessing"
	pkgerrors "picklist/internal/errors"
	"picklist/internal/exporter"
	"picklist/internal/files"
	"picklist/internal/infrastructure"
	"picklist/internal/validation"
)

// App wires the pipeline together and runs one batch: every CSV file in the
// input directory is processed to completion (read, reshape, aggregate,
// render) before its goroutine moves on. Per-file failures are logged and
// skipped; only failing to enumerate inputs at all ends the run.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry

	discovery  *files.Discovery
	validator  *validation.FileValidator
	reshaper   *dataprocessing.Reshaper
	aggregator *dataprocessing.Aggregator
	renderer   *exporter.Renderer
	facts      *exporter.FactsWriter
}

// Summary reports what one batch run did.
type Summary struct {
	FilesSeen      int
	FilesProcessed int
	FilesSkipped   int
	FactsEmitted   int
	ReportsWritten int
}

// New creates the application from configuration.
func New(cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry) *App {
	if logger == nil {
		logger = slog.Default()
	}
	sizes := dataprocessing.NewSizeNormalizer(cfg.Layout.SizeOrder)
	return &App{
		cfg:        cfg,
		logger:     logger,
		telemetry:  telemetry,
		discovery:  files.NewDiscovery(""),
		validator:  validation.NewFileValidator(logger),
		reshaper:   dataprocessing.NewReshaper(cfg.Layout, sizes, logger),
		aggregator: dataprocessing.NewAggregator(sizes),
		renderer:   exporter.NewRenderer(logger),
		facts:      exporter.NewFactsWriter(logger),
	}
}

// Run executes one batch over the configured input directory.
func (a *App) Run(ctx context.Context) (Summary, error) {
	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())

	var summary Summary

	if err := a.validator.ValidateInputDirectory(a.cfg.Paths.InputDir); err != nil {
		return summary, err
	}
	if err := a.validator.ValidateOutputDirectory(a.cfg.Paths.OutputDir); err != nil {
		return summary, err
	}

	inputs, err := a.discovery.FindCSVFiles(a.cfg.Paths.InputDir)
	if err != nil {
		return summary, err
	}
	summary.FilesSeen = len(inputs)

	if len(inputs) == 0 {
		a.logger.WarnContext(ctx, "No CSV files found in input directory",
			slog.String("input_dir", a.cfg.Paths.InputDir))
		return summary, nil
	}

	a.logger.InfoContext(ctx, "Starting picking-list batch",
		slog.Int("files", len(inputs)),
		slog.Int("workers", a.cfg.Processing.Workers),
		slog.String("input_dir", a.cfg.Paths.InputDir),
		slog.String("output_dir", a.cfg.Paths.OutputDir))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Processing.Workers)

	for _, input := range inputs {
		input := input
		g.Go(func() error {
			result := a.processFile(gctx, input)
			mu.Lock()
			defer mu.Unlock()
			if result.err != nil {
				summary.FilesSkipped++
				return nil // per-file failures never abort the batch
			}
			summary.FilesProcessed++
			summary.FactsEmitted += result.facts
			summary.ReportsWritten += result.reports
			return nil
		})
	}
	// The group never returns an error; Wait just joins the workers.
	_ = g.Wait()

	a.logger.InfoContext(ctx, "Batch complete",
		slog.Int("files_seen", summary.FilesSeen),
		slog.Int("files_processed", summary.FilesProcessed),
		slog.Int("files_skipped", summary.FilesSkipped),
		slog.Int("facts_emitted", summary.FactsEmitted),
		slog.Int("reports_written", summary.ReportsWritten))

	return summary, nil
}

type fileResult struct {
	facts   int
	reports int
	err     error
}

// processFile runs one input file through the whole pipeline. All three
// report artifacts are built and flushed before the function returns; a
// failure rendering one report does not block the others.
func (a *App) processFile(ctx context.Context, input files.FileInfo) fileResult {
	ctx = infrastructure.WithInputFile(ctx, input.Name)
	ctx, span := a.telemetry.StartFileSpan(ctx, input.Name)
	defer span.End()

	a.logger.InfoContext(ctx, "Processing input file",
		slog.Int64("size_bytes", input.Size))

	if err := a.validator.ValidateCSVFile(input.Path); err != nil {
		return a.skip(ctx, span, err)
	}

	table, err := dataprocessing.ReadCSVTable(input.Path)
	if err != nil {
		return a.skip(ctx, span, err)
	}

	facts, err := a.reshaper.Reshape(table)
	if err != nil {
		return a.skip(ctx, span, err)
	}
	a.telemetry.FactsEmitted.Add(ctx, int64(len(facts)))

	outDir := filepath.Join(a.cfg.Paths.OutputDir, input.BaseName())
	if err := files.EnsureDir(outDir); err != nil {
		return a.skip(ctx, span, err)
	}

	result := fileResult{facts: len(facts)}

	byProduct := a.aggregator.ByProduct(facts)
	if err := a.renderer.WriteProductReport(filepath.Join(outDir, exporter.ProductWorkbook), byProduct); err != nil {
		a.logRenderFailure(ctx, err)
	} else {
		result.reports++
	}

	byCenter := a.aggregator.ByCenter(facts)
	if err := a.renderer.WriteCenterReport(filepath.Join(outDir, exporter.CenterWorkbook), byCenter); err != nil {
		a.logRenderFailure(ctx, err)
	} else {
		result.reports++
	}

	byStore := a.aggregator.ByStore(facts)
	if err := a.renderer.WriteStoreReport(filepath.Join(outDir, exporter.StoreWorkbook), byStore); err != nil {
		a.logRenderFailure(ctx, err)
	} else {
		result.reports++
	}

	if a.cfg.Processing.DumpFacts {
		if err := a.facts.WriteFacts(filepath.Join(outDir, exporter.FactsFile), facts); err != nil {
			a.logger.WarnContext(ctx, "Facts dump failed", slog.String("error", err.Error()))
		}
	}

	a.telemetry.FilesProcessed.Add(ctx, 1)
	a.telemetry.ReportsWritten.Add(ctx, int64(result.reports))
	a.logger.InfoContext(ctx, "Input file processed",
		slog.Int("facts", len(facts)),
		slog.Int("products", len(byProduct)),
		slog.Int("centers", len(byCenter)),
		slog.Int("stores", len(byStore)),
		slog.Int("reports", result.reports))

	return result
}

// skip records a recoverable per-file failure and moves on.
func (a *App) skip(ctx context.Context, span trace.Span, err error) fileResult {
	span.SetStatus(codes.Error, err.Error())
	a.telemetry.FilesSkipped.Add(ctx, 1)

	if code := pkgerrors.CodeOf(err); code != "" {
		a.logger.WarnContext(ctx, "Skipping input file",
			slog.String("code", string(code)),
			slog.String("error", err.Error()))
	} else {
		a.logger.WarnContext(ctx, "Skipping input file",
			slog.String("error", err.Error()))
	}
	return fileResult{err: err}
}

func (a *App) logRenderFailure(ctx context.Context, err error) {
	a.logger.ErrorContext(ctx, "Report rendering failed",
		slog.String("code", string(pkgerrors.CodeRenderFailure)),
		slog.String("error", err.Error()))
}
