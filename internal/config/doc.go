// Package config loads application configuration from built-in defaults, an
// optional YAML file and DATACHECK_-prefixed environment variables, and
// validates the result.
package config
