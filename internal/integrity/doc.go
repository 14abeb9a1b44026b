// Package integrity proves that a container round trip preserved its payload.
//
// The validator sniffs the container format, runs the matching extraction,
// and folds every failure into a structured report instead of returning
// errors: its contract is to always produce a report for any readable input.
// With a known original payload it compares sizes and SHA-256 checksums;
// without one it only grants integrity to encodings that are lossless by
// construction. Batch mode evaluates a directory of containers on a bounded
// worker pool with per-file isolation and filename-ordered results.
package integrity
