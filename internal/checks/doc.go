// Package checks implements the data-quality check engine: null, duplicate
// and z-score outlier detection over in-memory tabular datasets, and the
// runner that aggregates per-column results into a report.
//
// Detectors are pure functions over an immutable column view. They never
// mutate the input table and always report original row indices. The runner
// validates the outlier threshold once up front and isolates per-column
// failures as note-carrying results, so a malformed column never aborts the
// rest of the run.
package checks
