package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

const (
	// RunIDContextKey is the key for storing the batch run ID in context.
	RunIDContextKey contextKey = "run_id"
	// InputFileContextKey is the key for the input file currently being
	// processed.
	InputFileContextKey contextKey = "input_file"
)

// NewRunID creates a new unique run ID using UUID v4.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetRunID retrieves the run ID from context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDContextKey).(string); ok {
		return runID
	}
	return ""
}

// WithInputFile tags the context with the input file being processed, so
// every log line of a per-file unit of work carries it.
func WithInputFile(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, InputFileContextKey, name)
}

// GetInputFile retrieves the current input file name from context.
func GetInputFile(ctx context.Context) string {
	if name, ok := ctx.Value(InputFileContextKey).(string); ok {
		return name
	}
	return ""
}

// LoggerWithContext creates a logger that includes the run ID from context.
func LoggerWithContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()
	if runID := GetRunID(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}
	if file := GetInputFile(ctx); file != "" {
		logger = logger.With("input_file", file)
	}
	return logger
}
