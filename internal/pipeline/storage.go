package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"testgen/internal/source"
)

// Storage abstracts the file system for the read and write stages.
type Storage interface {
	// ReadFile returns the decoded text of path.
	ReadFile(ctx context.Context, path string) (string, error)
	// WriteFile stores content at path, creating parent directories.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// OSStorage reads and writes the local file system.
type OSStorage struct{}

// ReadFile loads path and decodes it (BOM, UTF-16, CRLF).
func (OSStorage) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, _, err := source.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return string(content), nil
}

// WriteFile writes content through a temporary file and renames it in place,
// so a reader never sees a half-written test file.
func (OSStorage) WriteFile(ctx context.Context, path string, content []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
