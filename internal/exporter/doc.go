// Package exporter serializes check reports to files: the full nested report
// as indented JSON, and an optional flat per-column summary as CSV.
package exporter
