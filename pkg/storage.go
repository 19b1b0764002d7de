package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoreFile writes data under root with a generated name, keeping the original
// extension. Returns the path relative to root.
func StoreFile(root string, originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create storage root: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// ReadFile reads a stored file back. The name must be a bare file name as
// returned by StoreFile, never a client-supplied path.
func ReadFile(root string, name string) ([]byte, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	return os.ReadFile(filepath.Join(root, name))
}
