// Package errors defines the pipeline error taxonomy. Every error here is a
// per-file or per-report condition, recoverable at the batch level: the batch
// runner logs it and continues with the next file.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a pipeline failure for logging and run summaries.
type Code string

const (
	// CodeMalformedInput means the table failed structural validation
	// (column count below the layout threshold).
	CodeMalformedInput Code = "MALFORMED_INPUT"

	// CodeNoUsableData means the table was structurally valid but produced
	// zero positive-quantity facts.
	CodeNoUsableData Code = "NO_USABLE_DATA"

	// CodeDecodeFailure means the input bytes could not be decoded with
	// either supported encoding.
	CodeDecodeFailure Code = "DECODE_FAILURE"

	// CodeRenderFailure means writing one report artifact failed. Other
	// reports of the same file are still attempted.
	CodeRenderFailure Code = "RENDER_FAILURE"
)

// PipelineError is a code-carrying error for per-file processing failures.
type PipelineError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches any PipelineError with the same code, so the sentinels below
// work with errors.Is regardless of message or cause.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Code == e.Code
}

// New creates a PipelineError with the given code and message.
func New(code Code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Newf creates a PipelineError with a formatted message.
func Newf(code Code, format string, args ...any) *PipelineError {
	return &PipelineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a PipelineError wrapping an underlying cause.
func Wrap(code Code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Sentinels for errors.Is checks at the per-file boundary.
var (
	ErrMalformedInput = New(CodeMalformedInput, "input column count below threshold")
	ErrNoUsableData   = New(CodeNoUsableData, "no positive-quantity facts in input")
	ErrDecodeFailure  = New(CodeDecodeFailure, "input could not be decoded")
	ErrRenderFailure  = New(CodeRenderFailure, "report artifact could not be written")
)

// CodeOf returns the code of err if it is a PipelineError, or "" otherwise.
func CodeOf(err error) Code {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsSkippable reports whether err is a per-file condition the batch runner
// should log and skip rather than surface.
func IsSkippable(err error) bool {
	switch CodeOf(err) {
	case CodeMalformedInput, CodeNoUsableData, CodeDecodeFailure:
		return true
	}
	return false
}
