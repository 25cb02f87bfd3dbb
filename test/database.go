// Package test contains helpers shared by tests across packages.
package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns a path in a temporary directory for a test database.
// The directory is cleaned up when the test finishes.
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}
