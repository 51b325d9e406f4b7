// Package http implements the HTTP transport for the check engine: an upload
// endpoint that runs data-quality checks over a submitted tabular file and
// returns the report as JSON, plus health endpoints.
package http
