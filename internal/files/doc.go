// Package files provides input discovery and output directory management
// for the batch runner.
package files
