// Package dataprocessing implements the reshaping and aggregation core of
// the picking-list generator.
//
// The pipeline runs strictly left to right: a raw rectangular table read
// from a delimited-text export is validated against a positional Layout,
// the repeating store-quantity column blocks are located and unpivoted into
// a long relation of Facts, the size dimension is normalized and custom
// ordered, and three independent grouped views (by product, by fulfillment
// center, by store) are produced with deterministic ordering. Nothing here
// touches presentation; the exporter package renders the results.
package dataprocessing
