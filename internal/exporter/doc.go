// Package exporter renders aggregated picking lists into styled Excel
// workbooks and optional CSV dumps. It is presentation-only: all grouping,
// sorting, and totals arrive precomputed from the dataprocessing package.
package exporter
