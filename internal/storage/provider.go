// Package storage defines the file-system abstraction used for content
// sources and build output.
package storage

import "github.com/starford/sitegen/internal/models"

// Provider is the interface for file operations relative to a root directory.
type Provider interface {
	// List returns metadata for every file under dir whose extension is one of exts.
	// An empty exts matches every file.
	List(dir string, exts ...string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
