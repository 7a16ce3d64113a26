// Package app orchestrates one batch run of the picking-list generator:
// input discovery, per-file processing with recoverable failure handling,
// and the run summary.
package app
