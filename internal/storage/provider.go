// Package storage defines the output file-system abstraction used by the
// static exporter.
package storage

import "time"

// File describes one file under the provider root.
type File struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for output file operations. Paths are relative
// to the provider root and use forward slashes.
type Provider interface {
	// List returns every regular file under dir, sorted by path.
	List(dir string) ([]File, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
