// Package storage defines the content-store abstraction.
//
// The content directory is the system of record. It is read-only at
// runtime: editorial changes happen by editing files, never through this
// interface.
package storage

import "time"

// FileInfo describes one content file found by List.
type FileInfo struct {
	Path     string    // relative to the content root, forward slashes
	Checksum string    // hex SHA-256 of the file contents
	ModTime  time.Time // filesystem modification time
}

// Provider is the read-only interface for content file access.
type Provider interface {
	// List returns info for every .md file under dir (relative to the
	// content root). A missing dir yields an empty result, not an error.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
}
