// Package files discovers checkable input files on disk.
package files
