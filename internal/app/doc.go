// Package app assembles the check server: configuration, logging, the HTTP
// router with its middleware chain, and graceful lifecycle handling.
package app
