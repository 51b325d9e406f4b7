// Package errors defines the RFC 7807 problem documents used by the HTTP
// surface.
package errors
